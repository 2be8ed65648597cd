package md2site

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alnah/go-md2site/internal/fileutil"
)

// WriteRequest describes the outputs of one rendered document.
type WriteRequest struct {
	Source      string    // Source file; never deleted even when it equals Destination
	Destination string    // Output path with the source extension
	HTML        string    // Page rewritten for the HTML target
	PDFHTML     string    // Page rewritten for the PDF target
	Title       string    // Document title
	Formats     FormatSet // Formats to write
}

// Writer materialises rendered documents on disk.
//
// Writes are not atomic: each stale output is deleted before it is
// recreated, so a concurrent reader can briefly observe a missing file.
type Writer struct {
	engine PDFEngine
	out    io.Writer
}

// NewWriter creates a Writer. engine may be nil when no PDF is requested.
// Progress lines go to out (nil discards them).
func NewWriter(engine PDFEngine, out io.Writer) *Writer {
	if out == nil {
		out = io.Discard
	}
	return &Writer{engine: engine, out: out}
}

// Write produces every requested format for req and returns the paths
// written. The PDF is written first, then the HTML; a failure of one does
// not prevent the other, and both errors are joined.
func (w *Writer) Write(ctx context.Context, req WriteRequest) ([]string, error) {
	dest := fileutil.Path(req.Destination)

	if err := prepareDestination(dest, req.Source); err != nil {
		return nil, err
	}

	var (
		written []string
		errs    []error
	)

	if req.Formats.Has(FormatPDF) {
		path, err := w.writePDF(ctx, dest, req)
		if err != nil {
			errs = append(errs, err)
		} else {
			written = append(written, path)
			fmt.Fprintf(w.out, "Compiled: %s (PDF)\n", path)
		}
	}

	if req.Formats.Has(FormatHTML) {
		path, err := writeHTML(dest, req.HTML)
		if err != nil {
			errs = append(errs, err)
		} else {
			written = append(written, path)
			fmt.Fprintf(w.out, "Compiled: %s (HTML)\n", path)
		}
	}

	return written, errors.Join(errs...)
}

// prepareDestination removes a file sitting at the literal destination, or
// creates the parent chain when nothing is there.
func prepareDestination(dest fileutil.Path, source string) error {
	info, err := os.Lstat(dest.String())
	switch {
	case err == nil && !info.IsDir():
		if sameFile(dest.String(), source) {
			return nil
		}
		if err := os.Remove(dest.String()); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		return nil
	case err == nil:
		// A directory named like the destination is left alone; the final
		// paths carry a different extension.
		return nil
	case errors.Is(err, os.ErrNotExist):
		if err := os.MkdirAll(dest.Dir().String(), 0o755); err != nil {
			return fmt.Errorf("%w: %v", ErrOutputDir, err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
}

func (w *Writer) writePDF(ctx context.Context, dest fileutil.Path, req WriteRequest) (string, error) {
	path := dest.WithOutputExt(".pdf").String()

	if w.engine == nil {
		return "", ErrNoPDFEngine
	}
	if req.PDFHTML == "" {
		return "", ErrEmptyPDFSource
	}
	if _, err := fileutil.RemoveIfExists(path); err != nil {
		return "", fmt.Errorf("%w: removing stale %s: %v", ErrWriteOutput, path, err)
	}

	data, err := w.engine.RenderPDF(ctx, req.PDFHTML, PDFOptions{
		Title:     req.Title,
		Landscape: true,
		BaseDir:   dest.Dir().String(),
	})
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil { // #nosec G306 -- site output is world-readable
		return "", fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return path, nil
}

func writeHTML(dest fileutil.Path, content string) (string, error) {
	path := dest.WithOutputExt(".html").String()

	if _, err := fileutil.RemoveIfExists(path); err != nil {
		return "", fmt.Errorf("%w: removing stale %s: %v", ErrWriteOutput, path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil { // #nosec G306 -- site output is world-readable
		return "", fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return path, nil
}

// sameFile reports whether a and b name the same existing file.
func sameFile(a, b string) bool {
	if b == "" {
		return false
	}
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}
