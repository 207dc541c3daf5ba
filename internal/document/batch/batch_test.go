package batch

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mrigajana-makstark/makstarkrepo2/internal/document/assets"
	"github.com/mrigajana-makstark/makstarkrepo2/internal/document/render"
	"go.uber.org/zap"
)

// stubEngine avoids spawning Chromium; the packager only cares about the
// bytes it returns.
type stubEngine struct{}

func (stubEngine) Render(ctx context.Context, html string) ([]byte, error) {
	return []byte("%PDF-1.4 stub"), nil
}

func newTestPackager(template string) *Packager {
	renderer := render.NewRenderer(&assets.Assets{OfferTemplate: template})
	return &Packager{
		renderer: renderer,
		engine:   stubEngine{},
		log:      zap.NewNop(),
	}
}

func TestPackageProducesOneEntryPerItem(t *testing.T) {
	p := newTestPackager("Dear {name}")

	out, err := p.Package(context.Background(), []map[string]any{
		{"name": "Sonia Bag"},
		{"name": "Rupam Das"},
	})
	if err != nil {
		t.Fatalf("package: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(out), int64(len(out)))
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	if len(zr.File) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(zr.File))
	}
	if zr.File[0].Name != "Sonia_Bag.pdf" {
		t.Fatalf("expected Sonia_Bag.pdf, got %q", zr.File[0].Name)
	}
	if zr.File[1].Name != "Rupam_Das.pdf" {
		t.Fatalf("expected Rupam_Das.pdf, got %q", zr.File[1].Name)
	}
}

func TestPackageFailsFastWithItemIndex(t *testing.T) {
	// The second item misses the structural field the template needs.
	p := newTestPackager("Ref: {reference_code}")

	_, err := p.Package(context.Background(), []map[string]any{
		{"name": "First", "reference_code": "A-1"},
		{"name": "Second"},
		{"name": "Third", "reference_code": "A-3"},
	})
	if err == nil {
		t.Fatalf("expected batch to fail")
	}

	var itemErr *ItemError
	if !errors.As(err, &itemErr) {
		t.Fatalf("expected ItemError, got %T", err)
	}
	if itemErr.Index != 2 {
		t.Fatalf("expected failure at item 2, got %d", itemErr.Index)
	}
	if !errors.Is(err, render.ErrMissingTemplateField) {
		t.Fatalf("expected template error cause, got %v", itemErr.Err)
	}
	if !strings.Contains(err.Error(), "item 2") {
		t.Fatalf("expected item index in message, got %q", err.Error())
	}
}

func TestPackageUnnamedItemsGetPositionalNames(t *testing.T) {
	p := newTestPackager("Hello {name}")

	out, err := p.Package(context.Background(), []map[string]any{{}})
	if err != nil {
		t.Fatalf("package: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(out), int64(len(out)))
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	if zr.File[0].Name != "Offer_1.pdf" {
		t.Fatalf("expected Offer_1.pdf, got %q", zr.File[0].Name)
	}
}
