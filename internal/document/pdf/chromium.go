package pdf

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/mrigajana-makstark/makstarkrepo2/internal/config"
	"go.uber.org/zap"
)

// ChromiumEngine prints documents via headless Chromium. Chromium is
// spawned per render; the agency's volume does not justify a pooled
// browser.
type ChromiumEngine struct {
	cfg config.PDFConfig
	log *zap.Logger
}

func NewChromiumEngine(cfg config.Config, log *zap.Logger) Engine {
	return &ChromiumEngine{
		cfg: cfg.PDF,
		log: log.Named("document.pdf"),
	}
}

func (e *ChromiumEngine) Render(ctx context.Context, html string) ([]byte, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
	)
	if e.cfg.ChromiumPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(e.cfg.ChromiumPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	timeout := e.cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	runCtx, cancelRun := chromedp.NewContext(allocCtx)
	defer cancelRun()
	runCtx, cancelTimeout := context.WithTimeout(runCtx, timeout)
	defer cancelTimeout()

	var out []byte
	dataURL := "data:text/html," + url.PathEscape(html)
	err := chromedp.Run(runCtx,
		chromedp.Navigate(dataURL),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, perr := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if perr == nil {
				out = buf
			}
			return perr
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("chromium print failed: %w", err)
	}
	if len(out) == 0 {
		return nil, ErrEmptyRender
	}
	return out, nil
}
