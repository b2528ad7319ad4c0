package ocr

import (
	"context"
	"errors"
)

// ErrNoText indicates that recognition completed but produced no text at all.
var ErrNoText = errors.New("no text recognized")

// Engine recognizes text in a single page image.
type Engine interface {
	// Recognize extracts text from one raster image (PNG, JPEG, TIFF...).
	Recognize(ctx context.Context, image []byte) (string, error)
	// Name identifies the engine, e.g. "tesseract".
	Name() string
	// Close releases engine resources.
	Close() error
}

// DocumentRecognizer extracts text from a whole uploaded file in one call.
// It is used as the cloud fallback and receives the raw upload bytes,
// whatever their format.
type DocumentRecognizer interface {
	RecognizeDocument(ctx context.Context, content []byte) (string, error)
	Close() error
}
