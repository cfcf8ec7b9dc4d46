// Package pdf acquires per-page images from uploaded PDF documents for
// vision inference. Errors here are terminal for the enclosing document but
// never for its batch.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Rasterizer turns PDF bytes into an ordered list of page images.
type Rasterizer interface {
	Rasterize(ctx context.Context, data []byte) ([][]byte, error)
}

// ImageExtractor implements Rasterizer via pdfcpu image extraction. Medical
// documents arriving here are scans, one full-page image per page, so
// extracting the largest embedded image of each page recovers the page
// raster without an external renderer.
type ImageExtractor struct {
	Logger *slog.Logger
}

func NewImageExtractor(logger *slog.Logger) *ImageExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &ImageExtractor{Logger: logger}
}

func (r *ImageExtractor) Rasterize(ctx context.Context, data []byte) ([][]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	count, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}
	if count == 0 {
		return nil, fmt.Errorf("pdf has no pages")
	}

	extracted, err := api.ExtractImagesRaw(bytes.NewReader(data), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("extract page images: %w", err)
	}

	byPage := make(map[int][]byte)
	for _, pageImages := range extracted {
		for _, img := range pageImages {
			raw, err := io.ReadAll(img)
			if err != nil {
				return nil, fmt.Errorf("read page %d image: %w", img.PageNr, err)
			}
			// keep the largest image per page; small ones are logos/stamps
			if len(raw) > len(byPage[img.PageNr]) {
				byPage[img.PageNr] = raw
			}
		}
	}
	if len(byPage) == 0 {
		return nil, fmt.Errorf("pdf contains no extractable page images (%d pages)", count)
	}

	pages := make([]int, 0, len(byPage))
	for p := range byPage {
		pages = append(pages, p)
	}
	sort.Ints(pages)

	out := make([][]byte, 0, len(pages))
	for _, p := range pages {
		out = append(out, byPage[p])
	}

	r.Logger.Info("pdf.rasterize.ok", "pages", count, "images", len(out))
	return out, nil
}
