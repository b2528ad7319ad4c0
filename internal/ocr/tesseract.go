package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// TesseractEngine recognizes text with the Tesseract library via gosseract.
// A fresh client is created per image; gosseract clients are not safe for
// concurrent use and recognition state leaks between images otherwise.
type TesseractEngine struct {
	languages []string
}

// NewTesseractEngine creates a Tesseract engine. languages is a '+'-separated
// Tesseract language list such as "eng" or "eng+deu".
func NewTesseractEngine(languages string) *TesseractEngine {
	var langs []string
	for _, l := range strings.Split(languages, "+") {
		if l = strings.TrimSpace(l); l != "" {
			langs = append(langs, l)
		}
	}
	return &TesseractEngine{languages: langs}
}

func (t *TesseractEngine) Name() string { return "tesseract" }

// Recognize runs Tesseract on one raster image and returns the trimmed text.
func (t *TesseractEngine) Recognize(ctx context.Context, image []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if len(t.languages) > 0 {
		if err := client.SetLanguage(t.languages...); err != nil {
			return "", fmt.Errorf("set languages: %w", err)
		}
	}
	if err := client.SetPageSegMode(gosseract.PSM_AUTO); err != nil {
		return "", fmt.Errorf("set page segmentation mode: %w", err)
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("tesseract: %w", err)
	}
	return strings.TrimSpace(text), nil
}

func (t *TesseractEngine) Close() error { return nil }
