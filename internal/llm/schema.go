package llm

// JSON-Schema builders (draft 2020-12 subset) for each document kind. The
// schemas gate structure only (arrays must be arrays, entries must be
// objects); every scalar field stays optional and unconstrained, so the
// record builders can apply their field-level fallbacks instead of a whole
// document being rejected over one missing or garbled value.

func stringOrNull() map[string]any {
	return map[string]any{"type": []string{"string", "null"}}
}

// BuildDischargeSchema describes the discharge-summary document tree.
func BuildDischargeSchema() map[string]any {
	medication := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":       stringOrNull(),
			"dosage":     stringOrNull(),
			"start_date": stringOrNull(),
			"end_date":   stringOrNull(),
			"timing":     map[string]any{"type": "array", "items": stringOrNull()},
			"days":       map[string]any{"type": "array", "items": stringOrNull()},
			"frequency":  stringOrNull(),
			"status":     stringOrNull(),
		},
	}
	followup := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"followup_date": stringOrNull(),
			"reason":        stringOrNull(),
			"notes":         stringOrNull(),
		},
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"medications":          map[string]any{"type": "array", "items": medication},
			"patient_name":         stringOrNull(),
			"discharge_date":       stringOrNull(),
			"diagnosis":            stringOrNull(),
			"additional_notes":     stringOrNull(),
			"appointment_followup": map[string]any{"type": "array", "items": followup},
		},
	}
}

// BuildBillSchema describes the parsed bill tree.
func BuildBillSchema() map[string]any {
	item := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name": stringOrNull(),
			"cost": stringOrNull(),
		},
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":    stringOrNull(),
			"details": map[string]any{"type": "array", "items": item},
			"total":   stringOrNull(),
		},
	}
}

// BuildReportSchema describes the parsed lab report tree.
func BuildReportSchema() map[string]any {
	biomarker := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":  stringOrNull(),
			"range": stringOrNull(),
			"value": stringOrNull(),
		},
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":       stringOrNull(),
			"reason":     stringOrNull(),
			"biomarkers": map[string]any{"type": "array", "items": biomarker},
		},
	}
}
