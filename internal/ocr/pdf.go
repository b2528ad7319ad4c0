package ocr

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Test seams; replaced to simulate a missing or failing pdftoppm binary.
var (
	lookPath           = exec.LookPath
	execCommandContext = exec.CommandContext
)

// PDFConverter rasterizes PDF pages to PNG images with Poppler's pdftoppm.
// Poppler has no Go bindings; the binary ships with the runtime image.
type PDFConverter struct {
	binPath string
	dpi     int
	workDir string
}

// NewPDFConverter creates a converter. binPath may be empty to use "pdftoppm"
// from PATH; workDir is the writable scratch directory for page files and may
// be empty to use the system temp dir.
func NewPDFConverter(binPath string, dpi int, workDir string) *PDFConverter {
	if binPath == "" {
		binPath = "pdftoppm"
	}
	if dpi <= 0 {
		dpi = 300
	}
	return &PDFConverter{binPath: binPath, dpi: dpi, workDir: workDir}
}

// Available reports whether the pdftoppm binary can be found.
func (c *PDFConverter) Available() bool {
	if strings.ContainsRune(c.binPath, os.PathSeparator) {
		_, err := os.Stat(c.binPath)
		return err == nil
	}
	_, err := lookPath(c.binPath)
	return err == nil
}

func (c *PDFConverter) args(input, prefix string) []string {
	return []string{"-r", strconv.Itoa(c.dpi), "-png", input, prefix}
}

// Images renders every page of the given PDF to a PNG and returns them in
// page order. The scratch directory is removed before returning.
func (c *PDFConverter) Images(ctx context.Context, pdf []byte) ([][]byte, error) {
	tmpDir, err := os.MkdirTemp(c.workDir, "ocr-pages-*")
	if err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	input := filepath.Join(tmpDir, "input.pdf")
	if err := os.WriteFile(input, pdf, 0o600); err != nil {
		return nil, fmt.Errorf("write input pdf: %w", err)
	}

	prefix := filepath.Join(tmpDir, "page")
	cmd := execCommandContext(ctx, c.binPath, c.args(input, prefix)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("pdftoppm: %w", err)
		}
		return nil, fmt.Errorf("pdftoppm: %w: %s", err, msg)
	}

	matches, err := filepath.Glob(prefix + "-*.png")
	if err != nil {
		return nil, fmt.Errorf("glob pages: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("pdftoppm produced no pages")
	}
	sortPages(matches)

	pages := make([][]byte, 0, len(matches))
	for _, m := range matches {
		b, err := os.ReadFile(m)
		if err != nil {
			return nil, fmt.Errorf("read page %s: %w", filepath.Base(m), err)
		}
		pages = append(pages, b)
	}
	return pages, nil
}

// sortPages orders pdftoppm output files by page number. pdftoppm does not
// zero-pad consistently across versions, so a lexical sort would put page-10
// before page-2.
func sortPages(paths []string) {
	sort.Slice(paths, func(i, j int) bool {
		ni, iok := pageNumber(paths[i])
		nj, jok := pageNumber(paths[j])
		if iok && jok {
			return ni < nj
		}
		return paths[i] < paths[j]
	})
}

func pageNumber(path string) (int, bool) {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	idx := strings.LastIndexByte(base, '-')
	if idx < 0 {
		return 0, false
	}
	n, err := strconv.Atoi(base[idx+1:])
	if err != nil {
		return 0, false
	}
	return n, true
}
