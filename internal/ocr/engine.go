package ocr

import "fmt"

// NewEngine builds the local OCR engine selected by engineType.
// An empty engineType defaults to Tesseract.
func NewEngine(engineType string, languages string) (Engine, error) {
	switch engineType {
	case "tesseract", "":
		return NewTesseractEngine(languages), nil
	default:
		return nil, fmt.Errorf("unknown ocr engine: %s", engineType)
	}
}
