// Package llm defines the vision-inference contract the pipeline depends on,
// plus the prompts and JSON Schemas for each document kind. The pipeline
// treats inference as a black box returning free text; everything after that
// is local repair and validation.
package llm

import "context"

// VisionRequest is one inference call: a parsing prompt plus the rasterized
// pages of a single document.
type VisionRequest struct {
	Prompt string
	Pages  [][]byte // PNG bytes, one per page, in page order
	Model  string   // optional override of the client default
}

// VisionClient is the external inference collaborator. Implementations give
// no structural guarantee about the returned text.
type VisionClient interface {
	Complete(ctx context.Context, req VisionRequest) (string, error)
}
