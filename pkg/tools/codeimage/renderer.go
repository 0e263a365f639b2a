package codeimage

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/alecthomas/chroma/v2"
	htmlformatter "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/playwright-community/playwright-go"
)

const (
	renderViewportWidth  = 900
	renderViewportHeight = 600
)

// Renderer turns highlighted code into PNG images using a headless
// Chromium instance. The browser is launched lazily on first render and
// reused afterwards.
type Renderer struct {
	mu          sync.Mutex
	pw          *playwright.Playwright
	browser     playwright.Browser
	initialized bool
}

// NewRenderer creates an uninitialized renderer. The browser is not
// launched until the first Render call.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// initialize installs and starts Playwright and launches Chromium.
// Output is discarded so driver installation does not corrupt the chat UI.
func (r *Renderer) initialize() error {
	if r.initialized {
		return nil
	}

	opts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}

	if err := playwright.Install(opts); err != nil {
		return fmt.Errorf("failed to install playwright: %w", err)
	}

	pw, err := playwright.Run(opts)
	if err != nil {
		return fmt.Errorf("failed to start playwright: %w", err)
	}

	headless := true
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: &headless,
	})
	if err != nil {
		pw.Stop()
		return fmt.Errorf("failed to launch browser: %w", err)
	}

	r.pw = pw
	r.browser = browser
	r.initialized = true
	return nil
}

// Render highlights the code with the given theme and screenshots the
// result into outPath as a PNG.
func (r *Renderer) Render(code, language, theme, outPath string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.initialize(); err != nil {
		return err
	}

	page, err := r.browser.NewPage(playwright.BrowserNewPageOptions{
		Viewport: &playwright.Size{
			Width:  renderViewportWidth,
			Height: renderViewportHeight,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create page: %w", err)
	}
	defer page.Close()

	doc, err := highlightHTML(code, language, theme)
	if err != nil {
		return err
	}

	htmlFile, err := os.CreateTemp("", "loom-snippet-*.html")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(htmlFile.Name())

	if _, err := htmlFile.Write(doc); err != nil {
		htmlFile.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	htmlFile.Close()

	absPath, err := filepath.Abs(htmlFile.Name())
	if err != nil {
		return err
	}
	if _, err := page.Goto("file://" + absPath); err != nil {
		return fmt.Errorf("failed to load snippet page: %w", err)
	}

	fullPage := true
	if _, err := page.Screenshot(playwright.PageScreenshotOptions{
		Path:     &outPath,
		FullPage: &fullPage,
	}); err != nil {
		return fmt.Errorf("screenshot failed: %w", err)
	}

	return nil
}

// Shutdown closes the browser and stops Playwright.
func (r *Renderer) Shutdown() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.initialized {
		return nil
	}

	if err := r.browser.Close(); err != nil {
		return fmt.Errorf("failed to close browser: %w", err)
	}
	if err := r.pw.Stop(); err != nil {
		return fmt.Errorf("failed to stop playwright: %w", err)
	}
	r.initialized = false
	return nil
}

// highlightHTML produces a standalone HTML document with the code
// syntax-highlighted in the given theme.
func highlightHTML(code, language, theme string) ([]byte, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(theme)
	if style == nil {
		style = styles.Fallback
	}

	formatter := htmlformatter.New(
		htmlformatter.Standalone(true),
		htmlformatter.WithLineNumbers(true),
		htmlformatter.TabWidth(4),
	)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return nil, fmt.Errorf("failed to tokenise code: %w", err)
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return nil, fmt.Errorf("failed to highlight code: %w", err)
	}
	return buf.Bytes(), nil
}
