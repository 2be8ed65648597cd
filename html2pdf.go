package md2site

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-md2site/internal/fileutil"
	"github.com/alnah/go-md2site/internal/process"
)

// PDFEngine converts a complete HTML page to PDF bytes.
// Implementations are not safe for concurrent use.
type PDFEngine interface {
	RenderPDF(ctx context.Context, htmlContent string, opts PDFOptions) ([]byte, error)
	Close() error
}

// PDFOptions holds options for one PDF rendering.
type PDFOptions struct {
	Title     string // Document title written into the page before printing
	Landscape bool
	// BaseDir is where the temporary HTML file is written, so relative
	// references resolve against it. Empty means the system temp directory.
	BaseDir string
}

// pdfRenderer abstracts PDF rendering from an HTML file to enable testing without a browser.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, opts PDFOptions) ([]byte, error)
	Close() error
}

// Compile-time interface checks
var (
	_ PDFEngine   = (*RodEngine)(nil)
	_ pdfRenderer = (*rodRenderer)(nil)
)

// rodRenderer implements pdfRenderer using go-rod.
// Rod downloads Chromium on first use if no browser is found.
type rodRenderer struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	timeout  time.Duration
}

func newRodRenderer(timeout time.Duration) *rodRenderer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &rodRenderer{timeout: timeout}
}

// newLauncher configures the browser launcher from the environment.
func newLauncher() *launcher.Launcher {
	l := launcher.New()

	bin := os.Getenv("ROD_BROWSER_BIN")
	if bin != "" {
		l = l.Bin(bin)
	}

	// Containers and CI runners usually lack the namespaces the sandbox needs.
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || bin != "" {
		l = l.NoSandbox(true)
	}
	return l
}

// ensureBrowser lazily launches and connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := newLauncher()
	u, err := l.Launch()
	if err != nil {
		l.Kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		r.launcher = l
		_ = r.Close()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.launcher = l
	r.browser = browser
	return nil
}

// Close shuts the browser down and kills whatever it left running.
func (r *rodRenderer) Close() error {
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}

	if r.launcher != nil {
		if pid := r.launcher.PID(); pid > 0 {
			if killErr := process.KillProcessGroup(pid); killErr != nil && !errors.Is(killErr, process.ErrInvalidPID) {
				err = errors.Join(err, killErr)
			}
		}
		r.launcher.Kill()
		r.launcher.Cleanup()
		r.launcher = nil
	}
	return err
}

// RenderFromFile opens a local HTML file in headless Chrome and prints it to PDF.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, opts PDFOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: fileURL(filePath)})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = page.Close() }()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = min(timeout, time.Until(deadline))
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Context(ctx).Timeout(timeout).WaitLoad(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if opts.Title != "" {
		if _, err := page.Eval(`t => { document.title = t }`, opts.Title); err != nil {
			return nil, fmt.Errorf("%w: setting title: %v", ErrPDFGeneration, err)
		}
	}

	reader, err := page.PDF(buildPDFOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return pdfBuf, nil
}

// buildPDFOptions prints edge to edge; the theme owns all spacing.
func buildPDFOptions(opts PDFOptions) *proto.PagePrintToPDF {
	return &proto.PagePrintToPDF{
		Landscape:       opts.Landscape,
		MarginTop:       floatPtr(0),
		MarginBottom:    floatPtr(0),
		MarginLeft:      floatPtr(0),
		MarginRight:     floatPtr(0),
		PrintBackground: true,
	}
}

// fileURL converts an absolute filesystem path to a file:// URL.
func fileURL(path string) string {
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}

func floatPtr(v float64) *float64 {
	return &v
}

// RodEngine renders PDFs with headless Chrome through go-rod.
// The browser starts on the first RenderPDF call; Close must be called to
// stop it.
type RodEngine struct {
	renderer pdfRenderer
}

// NewRodEngine creates an engine whose page loads time out after timeout
// (DefaultTimeout when zero).
func NewRodEngine(timeout time.Duration) *RodEngine {
	return &RodEngine{renderer: newRodRenderer(timeout)}
}

// RenderPDF writes htmlContent to a temporary file in opts.BaseDir, prints it
// and removes the file.
func (e *RodEngine) RenderPDF(ctx context.Context, htmlContent string, opts PDFOptions) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(opts.BaseDir, htmlContent, "html")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	defer cleanup()

	return e.renderer.RenderFromFile(ctx, tmpPath, opts)
}

// Close releases browser resources.
func (e *RodEngine) Close() error {
	if e.renderer != nil {
		return e.renderer.Close()
	}
	return nil
}
