package assets

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"

	"github.com/mrigajana-makstark/makstarkrepo2/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Assets are the read-only decorations loaded once at process start and
// shared by every render. A missing template switches the offer layout to
// the built-in fallback; a missing letterhead or font never blocks
// rendering.
type Assets struct {
	OfferTemplate     string
	LetterheadDataURI string
	FontFamily        string
}

func Load(cfg config.Config, log *zap.Logger) *Assets {
	log = log.Named("document.assets")
	a := &Assets{FontFamily: cfg.Assets.FontFamily}

	if raw, err := os.ReadFile(cfg.Assets.TemplatePath); err == nil {
		a.OfferTemplate = string(raw)
		log.Info("offer template loaded", zap.String("path", cfg.Assets.TemplatePath))
	} else {
		log.Warn("offer template missing, using fallback layout", zap.String("path", cfg.Assets.TemplatePath))
	}

	if raw, err := os.ReadFile(cfg.Assets.LetterheadPath); err == nil {
		a.LetterheadDataURI = "data:" + imageMIME(cfg.Assets.LetterheadPath) + ";base64," +
			base64.StdEncoding.EncodeToString(raw)
		log.Info("letterhead loaded", zap.String("path", cfg.Assets.LetterheadPath))
	} else {
		log.Warn("letterhead missing, header image skipped", zap.String("path", cfg.Assets.LetterheadPath))
	}

	return a
}

func imageMIME(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return "image/png"
	}
}

var Module = fx.Module("document.assets",
	fx.Provide(Load),
)
