// parsedoc runs the extraction and record-building stages offline: feed it
// raw model output (file or stdin) and it prints the structured record. Handy
// for replaying misbehaving model responses without touching the API.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/vibhandikyash/MediCare-BE/internal/docjson"
	"github.com/vibhandikyash/MediCare-BE/internal/entity"
	"github.com/vibhandikyash/MediCare-BE/internal/llm"
	"github.com/vibhandikyash/MediCare-BE/internal/records"
)

func main() {
	kind := flag.String("kind", "discharge", "document kind: discharge | bill | report")
	today := flag.String("today", "", "anchor date for reminder defaulting (YYYY-MM-DD, default today)")
	flag.Parse()

	text, err := readInput(flag.Arg(0))
	if err != nil {
		log.Fatalf("reading input: %v", err)
	}

	anchor := entity.DateOf(time.Now().UTC())
	if *today != "" {
		if anchor, err = entity.ParseDate(*today); err != nil {
			log.Fatalf("invalid -today: %v", err)
		}
	}

	tree, err := docjson.Extract(text)
	if err != nil {
		log.Fatalf("extract: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	builder := records.NewBuilder(logger, anchor)

	var record any
	switch *kind {
	case "discharge":
		if err := llm.ValidateDocument(llm.BuildDischargeSchema(), tree); err != nil {
			log.Fatalf("validate: %v", err)
		}
		record = builder.Discharge(tree)
	case "bill":
		if err := llm.ValidateDocument(llm.BuildBillSchema(), tree); err != nil {
			log.Fatalf("validate: %v", err)
		}
		record = builder.Bill(tree)
	case "report":
		if err := llm.ValidateDocument(llm.BuildReportSchema(), tree); err != nil {
			log.Fatalf("validate: %v", err)
		}
		record = builder.Report(tree)
	default:
		log.Fatalf("unknown kind %q", *kind)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(record); err != nil {
		log.Fatalf("encode: %v", err)
	}
}

func readInput(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}
