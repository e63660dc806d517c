package export

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/rs/zerolog"
)

// RodRasterizer renders pages in a headless Chromium driven by go-rod. The
// browser is launched on first use and shared by all captures; each capture
// gets its own page.
type RodRasterizer struct {
	bin     string
	timeout time.Duration
	log     zerolog.Logger

	mu      sync.Mutex
	browser *rod.Browser
}

// NewRodRasterizer uses the Chromium binary at bin, or lets the launcher find
// or download one when bin is empty.
func NewRodRasterizer(bin string, timeout time.Duration, log zerolog.Logger) *RodRasterizer {
	return &RodRasterizer{bin: bin, timeout: timeout, log: log}
}

func (r *RodRasterizer) ensureBrowser() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		return r.browser, nil
	}

	l := launcher.New().Headless(true)
	if r.bin != "" {
		l = l.Bin(r.bin)
	}
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch chromium: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect to chromium: %w", err)
	}

	r.log.Info().Str("control_url", controlURL).Msg("headless browser started")
	r.browser = browser
	return browser, nil
}

// Capture loads page into a blank tab sized to the export width and screenshots
// the element matching selector on a white background.
func (r *RodRasterizer) Capture(ctx context.Context, page []byte, selector string, settings Settings) ([]byte, error) {
	browser, err := r.ensureBrowser()
	if err != nil {
		return nil, err
	}

	tab, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	defer func() {
		if err := tab.Close(); err != nil {
			r.log.Warn().Err(err).Msg("close export page")
		}
	}()

	tab = tab.Context(ctx)
	if r.timeout > 0 {
		tab = tab.Timeout(r.timeout)
	}

	if err := (proto.EmulationSetDeviceMetricsOverride{
		Width:             settings.Width,
		Height:            800,
		DeviceScaleFactor: settings.Scale,
		Mobile:            false,
	}).Call(tab); err != nil {
		return nil, fmt.Errorf("set viewport: %w", err)
	}

	if err := (proto.EmulationSetDefaultBackgroundColorOverride{
		Color: &proto.DOMRGBA{R: 255, G: 255, B: 255},
	}).Call(tab); err != nil {
		return nil, fmt.Errorf("set background: %w", err)
	}

	if err := tab.SetDocumentContent(string(page)); err != nil {
		return nil, fmt.Errorf("load export page: %w", err)
	}
	if err := tab.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait for export page: %w", err)
	}

	el, err := tab.Element(selector)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", selector, err)
	}

	png, err := el.Screenshot(proto.PageCaptureScreenshotFormatPng, 0)
	if err != nil {
		return nil, fmt.Errorf("screenshot: %w", err)
	}
	return png, nil
}

// Close shuts the browser down if it was started.
func (r *RodRasterizer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser == nil {
		return nil
	}
	err := r.browser.Close()
	r.browser = nil
	return err
}
