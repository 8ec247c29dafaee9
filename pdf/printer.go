// Package pdf prints rendered notes documents through headless Chrome.
package pdf

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/adamspd/StudyNotes/utils"
)

// Printer turns an HTML document into PDF bytes.
type Printer interface {
	Print(ctx context.Context, html string) ([]byte, error)
}

type Config struct {
	// Bin is the Chrome binary. Empty lets rod find or download one.
	Bin string
	// ControlURL connects to an already running browser instead of launching.
	ControlURL string
	Timeout    time.Duration
}

// ChromePrinter launches the browser lazily and reuses it for every print.
type ChromePrinter struct {
	cfg Config

	mu       sync.Mutex
	browser  *rod.Browser
	launched *launcher.Launcher
}

func NewChromePrinter(cfg Config) *ChromePrinter {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	return &ChromePrinter{cfg: cfg}
}

func (p *ChromePrinter) connect() (*rod.Browser, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.browser != nil {
		return p.browser, nil
	}

	controlURL := p.cfg.ControlURL
	if controlURL == "" {
		l := launcher.New().Headless(true)
		if p.cfg.Bin != "" {
			l = l.Bin(p.cfg.Bin)
		}
		url, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("launch chrome: %w", err)
		}
		controlURL = url
		p.launched = l
		utils.LogJob("Launched headless Chrome at %s", controlURL)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect to chrome: %w", err)
	}

	p.browser = browser
	return browser, nil
}

func (p *ChromePrinter) Print(ctx context.Context, html string) ([]byte, error) {
	browser, err := p.connect()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	start := time.Now()
	page, err := browser.Context(ctx).Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	defer page.Close()

	if err := page.SetDocumentContent(html); err != nil {
		return nil, fmt.Errorf("set document content: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait for document: %w", err)
	}

	stream, err := page.PDF(&proto.PagePrintToPDF{
		PrintBackground:   true,
		PreferCSSPageSize: true,
	})
	if err != nil {
		return nil, fmt.Errorf("print to pdf: %w", err)
	}

	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("read pdf stream: %w", err)
	}

	utils.LogJob("Printed %d bytes of PDF in %v", len(data), time.Since(start))
	return data, nil
}

// Close shuts down the browser when this printer launched it.
func (p *ChromePrinter) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var err error
	if p.browser != nil {
		err = p.browser.Close()
		p.browser = nil
	}
	if p.launched != nil {
		p.launched.Cleanup()
		p.launched = nil
	}
	return err
}
