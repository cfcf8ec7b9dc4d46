package records

import "github.com/vibhandikyash/MediCare-BE/internal/entity"

// Report builds a lab report record from a parsed report document.
func (b *Builder) Report(doc map[string]any) entity.Report {
	name := asString(doc, "name")
	if name == "" {
		name = "Medical Report"
	}
	reason := asString(doc, "reason")
	if reason == "" {
		reason = "Routine monitoring"
	}

	report := entity.Report{Name: name, Reason: reason, Biomarkers: []entity.Biomarker{}}
	for _, v := range asList(doc, "biomarkers") {
		entry, ok := v.(map[string]any)
		if !ok {
			continue
		}
		marker := entity.Biomarker{
			Name:  asString(entry, "name"),
			Range: asString(entry, "range"),
			Value: asString(entry, "value"),
		}
		if marker.Name == "" {
			continue
		}
		report.Biomarkers = append(report.Biomarkers, marker)
	}
	return report
}
