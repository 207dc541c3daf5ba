package document

import (
	"github.com/mrigajana-makstark/makstarkrepo2/internal/document/assets"
	"github.com/mrigajana-makstark/makstarkrepo2/internal/document/batch"
	"github.com/mrigajana-makstark/makstarkrepo2/internal/document/pdf"
	"github.com/mrigajana-makstark/makstarkrepo2/internal/document/render"
	"go.uber.org/fx"
)

var Module = fx.Module("document",
	assets.Module,
	fx.Provide(render.NewRenderer),
	fx.Provide(pdf.NewChromiumEngine),
	fx.Provide(batch.NewPackager),
)
