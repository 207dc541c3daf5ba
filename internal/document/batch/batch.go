package batch

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/mrigajana-makstark/makstarkrepo2/internal/document/pdf"
	"github.com/mrigajana-makstark/makstarkrepo2/internal/document/render"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ItemError reports which batch item failed. Indexes are 1-based because
// the message is shown to the person fixing the input, not to code.
type ItemError struct {
	Index int
	Err   error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item %d: %v", e.Index, e.Err)
}

func (e *ItemError) Unwrap() error { return e.Err }

// Packager renders a list of offer entries and bundles the PDFs into one
// zip archive. Items are processed strictly in input order; the first
// failure aborts the whole batch so no partial archive ever leaves the
// process.
type Packager struct {
	renderer render.Renderer
	engine   pdf.Engine
	log      *zap.Logger
}

type PackagerParam struct {
	fx.In

	Renderer render.Renderer
	Engine   pdf.Engine
	Log      *zap.Logger
}

func NewPackager(p PackagerParam) *Packager {
	return &Packager{
		renderer: p.Renderer,
		engine:   p.Engine,
		log:      p.Log.Named("document.batch"),
	}
}

func (p *Packager) Package(ctx context.Context, items []map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for i, item := range items {
		fields := render.NormalizeOffer(item)

		html, err := p.renderer.RenderOffer(fields)
		if err != nil {
			return nil, &ItemError{Index: i + 1, Err: err}
		}
		pdfBytes, err := p.engine.Render(ctx, html)
		if err != nil {
			return nil, &ItemError{Index: i + 1, Err: err}
		}

		entry, err := zw.Create(entryName(fields, i))
		if err != nil {
			return nil, &ItemError{Index: i + 1, Err: err}
		}
		if _, err := entry.Write(pdfBytes); err != nil {
			return nil, &ItemError{Index: i + 1, Err: err}
		}
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	p.log.Info("batch packaged", zap.Int("items", len(items)))
	return buf.Bytes(), nil
}

func entryName(fields *render.OfferFields, index int) string {
	name, _ := fields.Get("name")
	name = strings.TrimSpace(name)
	if name == "" {
		name = fmt.Sprintf("Offer_%d", index+1)
	}
	return strings.ReplaceAll(name, " ", "_") + ".pdf"
}
