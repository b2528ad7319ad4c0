package ocr

import (
	"context"
	"fmt"
	"strings"

	vision "cloud.google.com/go/vision/apiv1"
	visionpb "google.golang.org/genproto/googleapis/cloud/vision/v1"
	"google.golang.org/api/option"

	"ocrapi/internal/config"
)

// VisionEngine sends the raw upload bytes to Google Cloud Vision document
// text detection. It is the fallback when local OCR yields too little text.
type VisionEngine struct {
	client *vision.ImageAnnotatorClient
}

// NewVisionEngine creates the Cloud Vision client. Credentials come from the
// configured key file or application default credentials.
func NewVisionEngine(ctx context.Context, cfg config.VisionConfig) (*VisionEngine, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	cli, err := vision.NewImageAnnotatorClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create vision client: %w", err)
	}
	return &VisionEngine{client: cli}, nil
}

// RecognizeDocument runs document text detection over the whole file content.
func (v *VisionEngine) RecognizeDocument(ctx context.Context, content []byte) (string, error) {
	annotation, err := v.client.DetectDocumentText(ctx, &visionpb.Image{Content: content}, nil)
	if err != nil {
		return "", fmt.Errorf("vision document text detection: %w", err)
	}
	if annotation == nil {
		return "", ErrNoText
	}
	text := strings.TrimSpace(annotation.GetText())
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}

// Close releases the underlying gRPC connection.
func (v *VisionEngine) Close() error { return v.client.Close() }
