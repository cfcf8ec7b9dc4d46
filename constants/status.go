package constants

import "strings"

// MedicationStatus is the lifecycle state of a prescribed medication.
type MedicationStatus string

const (
	MedicationActive    MedicationStatus = "active"
	MedicationStopped   MedicationStatus = "stopped"
	MedicationCompleted MedicationStatus = "completed"
)

// CanonicalizeMedicationStatus resolves a model-provided status label.
// Unknown labels report ok=false and fall back to active.
func CanonicalizeMedicationStatus(input string) (MedicationStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case string(MedicationActive):
		return MedicationActive, true
	case string(MedicationStopped), "discontinued":
		return MedicationStopped, true
	case string(MedicationCompleted), "finished":
		return MedicationCompleted, true
	default:
		return MedicationActive, false
	}
}

// FollowupStatus tracks whether a followup appointment was confirmed.
type FollowupStatus string

const (
	FollowupConfirmed    FollowupStatus = "confirmed"
	FollowupNotConfirmed FollowupStatus = "not_confirmed"
)

// CanonicalizeFollowupStatus resolves a followup status label, falling back
// to not_confirmed on anything unrecognized.
func CanonicalizeFollowupStatus(input string) (FollowupStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case string(FollowupConfirmed):
		return FollowupConfirmed, true
	case string(FollowupNotConfirmed):
		return FollowupNotConfirmed, true
	default:
		return FollowupNotConfirmed, false
	}
}

// DocStatus is the terminal state of one document inside a batch.
type DocStatus string

// Stable values (reported in batch summaries, stored alongside results).
const (
	DocPending          DocStatus = "PENDING"
	DocStoreFailed      DocStatus = "STORE_FAILED"
	DocRasterizeFailed  DocStatus = "RASTERIZE_FAILED"
	DocInferenceFailed  DocStatus = "INFERENCE_FAILED"
	DocExtractionFailed DocStatus = "EXTRACTION_FAILED"
	DocValidationFailed DocStatus = "VALIDATION_FAILED"
	DocSkipped          DocStatus = "SKIPPED"
	DocSucceeded        DocStatus = "SUCCEEDED"
)
