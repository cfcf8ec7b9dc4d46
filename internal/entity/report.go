package entity

// Biomarker is one measured value from a lab report.
type Biomarker struct {
	Name  string `json:"name"`
	Range string `json:"range"`
	Value string `json:"value"`
}

// Report is a parsed lab report, including the inferred reason the test was
// ordered (derived from the medication list and diagnosis prompt context).
type Report struct {
	Name       string      `json:"name"`
	Reason     string      `json:"reason"`
	Biomarkers []Biomarker `json:"biomarkers"`
	FileURL    string      `json:"file_url,omitempty"`
}
