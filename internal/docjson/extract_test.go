package docjson

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestExtractPlainObject(t *testing.T) {
	obj, err := Extract(`{"name": "Aspirin", "dosage": "500mg"}`)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if obj["name"] != "Aspirin" || obj["dosage"] != "500mg" {
		t.Fatalf("unexpected object: %#v", obj)
	}
}

func TestExtractFencedWithProse(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"fenced json tag", "```json\n{\"total\": \"2500\"}\n```"},
		{"fenced no tag", "```\n{\"total\": \"2500\"}\n```"},
		{"leading prose", "Here is the parsed bill:\n{\"total\": \"2500\"}\nLet me know if you need more."},
		{"prose and fences", "Sure! Here you go:\n```json\n{\"total\": \"2500\"}\n```\nHope that helps."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			obj, err := Extract(tc.in)
			if err != nil {
				t.Fatalf("Extract: %v", err)
			}
			if obj["total"] != "2500" {
				t.Fatalf("unexpected object: %#v", obj)
			}
		})
	}
}

func TestExtractTrailingCommas(t *testing.T) {
	in := `{"medications": [{"name": "Aspirin",},], "diagnosis": "flu",}`
	obj, err := Extract(in)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	meds, ok := obj["medications"].([]any)
	if !ok || len(meds) != 1 {
		t.Fatalf("medications not recovered: %#v", obj)
	}
	if obj["diagnosis"] != "flu" {
		t.Fatalf("diagnosis lost: %#v", obj)
	}
}

func TestExtractComments(t *testing.T) {
	in := `{
		// patient medication list
		"name": "Metformin", /* dosage below */
		"dosage": "850mg"
	}`
	obj, err := Extract(in)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if obj["name"] != "Metformin" || obj["dosage"] != "850mg" {
		t.Fatalf("unexpected object: %#v", obj)
	}
}

func TestExtractKeepsURLsWhenStrippingComments(t *testing.T) {
	in := `{"url": "https://example.com/report.pdf"} // stored copy`
	obj, err := Extract(in)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if obj["url"] != "https://example.com/report.pdf" {
		t.Fatalf("URL corrupted: %#v", obj)
	}
}

func TestExtractSingleQuotes(t *testing.T) {
	in := `{'name': 'Aspirin', 'dosage': '500mg'}`
	obj, err := Extract(in)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if obj["name"] != "Aspirin" {
		t.Fatalf("unexpected object: %#v", obj)
	}
}

func TestExtractEmbeddedEqualsDirectParse(t *testing.T) {
	inner := `{"name": "CBC", "biomarkers": [{"name": "Hemoglobin", "value": "14.5 g/dL", "range": "12-16 g/dL"}]}`
	wrapped := "The report parsed successfully:\n```json\n" + inner + "\n```\nDone."

	direct, err := Extract(inner)
	if err != nil {
		t.Fatalf("direct: %v", err)
	}
	recovered, err := Extract(wrapped)
	if err != nil {
		t.Fatalf("wrapped: %v", err)
	}
	if !reflect.DeepEqual(direct, recovered) {
		t.Fatalf("wrapped extraction differs from direct parse:\n%#v\n%#v", recovered, direct)
	}
}

func TestExtractFailureCarriesContext(t *testing.T) {
	_, err := Extract("I could not read the document, sorry.")
	if err == nil {
		t.Fatal("expected error for prose-only input")
	}
	var extErr *ExtractionError
	if !errors.As(err, &extErr) {
		t.Fatalf("expected *ExtractionError, got %T", err)
	}
}

// When cleanup empties the text, the later cleanup-derived candidates are
// blank-skipped and the failure belongs to the raw input; the window must be
// cut from that raw text, not from a skipped blank candidate.
func TestExtractWindowMatchesFailingCandidate(t *testing.T) {
	_, err := Extract("``````")
	if err == nil {
		t.Fatal("expected error for fence-only input")
	}
	var extErr *ExtractionError
	if !errors.As(err, &extErr) {
		t.Fatalf("expected *ExtractionError, got %T", err)
	}
	if extErr.Window == "" || !strings.Contains(extErr.Window, "`") {
		t.Fatalf("window should show the failing text, got %q", extErr.Window)
	}
}

func TestExtractNeverReturnsEmptyObjectOnFailure(t *testing.T) {
	obj, err := Extract("{broken: [}")
	if err == nil {
		t.Fatalf("expected failure, got %#v", obj)
	}
	if obj != nil {
		t.Fatalf("failure must not yield an object: %#v", obj)
	}
}

func TestExtractRejectsTopLevelArray(t *testing.T) {
	if _, err := Extract(`[1, 2, 3]`); err == nil {
		t.Fatal("top-level array must not satisfy extraction")
	}
}
