// Package pipeline orchestrates document processing: acquire bytes,
// rasterize, store, infer, extract, build. The discharge summary is a single
// fatal-on-error path; bills and reports run as isolated batches where one
// malformed document never voids its siblings.
package pipeline

import (
	"github.com/vibhandikyash/MediCare-BE/constants"
	"github.com/vibhandikyash/MediCare-BE/internal/entity"
)

// Document is one raw uploaded file.
type Document struct {
	Name string
	Data []byte
}

// BatchItemResult is the terminal outcome for one document in a batch. The
// batch always returns one result per input, in input order.
type BatchItemResult struct {
	Source string              `json:"source"`
	Status constants.DocStatus `json:"status"`
	Reason string              `json:"reason,omitempty"`

	// exactly one of these is set on success, matching the batch kind
	Bill   *entity.Bill   `json:"bill,omitempty"`
	Report *entity.Report `json:"report,omitempty"`
}

// Succeeded reports whether the item reached its terminal success state.
func (r BatchItemResult) Succeeded() bool {
	return r.Status == constants.DocSucceeded
}

// Summary aggregates batch outcomes for user-visible reporting
// ("processed M of N successfully").
type Summary struct {
	BillsTotal       int      `json:"bills_total"`
	BillsSucceeded   int      `json:"bills_succeeded"`
	ReportsTotal     int      `json:"reports_total"`
	ReportsSucceeded int      `json:"reports_succeeded"`
	Failures         []string `json:"failures,omitempty"`
}
