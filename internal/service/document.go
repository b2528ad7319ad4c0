package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"ocrapi/internal/model"
	"ocrapi/internal/ocr"
	"ocrapi/internal/repository"
	"ocrapi/internal/storage"
)

var (
	ErrIDRequired = errors.New("id is required")
	ErrNotFound   = errors.New("document not found")
	ErrReaderNil  = errors.New("reader is nil")
	// ErrNoTextExtracted means neither the local engine nor the fallback
	// produced any text for the upload.
	ErrNoTextExtracted = errors.New("no text could be extracted")
)

// downloadExpiry bounds the lifetime of presigned download URLs.
const downloadExpiry = 15 * time.Minute

// PageConverter renders a PDF into per-page raster images.
type PageConverter interface {
	Images(ctx context.Context, pdf []byte) ([][]byte, error)
}

// DocumentListResult is the service-level DTO for paginated documents.
type DocumentListResult struct {
	Items []model.Document `json:"data"`
	Total int              `json:"total"`
}

// PipelineOptions tune the extraction pipeline.
type PipelineOptions struct {
	// FallbackMinChars is the rune count of trimmed text below which the
	// cloud fallback is consulted.
	FallbackMinChars int
	// Workers bounds concurrent page recognition.
	Workers int
}

// DocumentService defines the use cases for handling documents.
type DocumentService interface {
	// Process reads the upload, extracts text (local OCR with optional cloud
	// fallback), archives the original bytes to object storage, and persists
	// the document metadata. Storage is rolled back if the DB save fails.
	// originalFilename decides PDF handling and supplies the stored extension.
	Process(ctx context.Context, r io.Reader, originalFilename string, contentType string, size int64) (*model.Document, error)

	// List returns documents using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*DocumentListResult, error)

	// Get returns a single document by its ID.
	Get(ctx context.Context, id string) (*model.Document, error)

	// Delete removes a document by ID from both storage and repository.
	Delete(ctx context.Context, id string) error

	// Download returns a presigned URL for the archived original upload.
	Download(ctx context.Context, id string) (string, error)
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store     storage.Storage
	repo      repository.DocumentRepository
	engine    ocr.Engine
	converter PageConverter
	fallback  ocr.DocumentRecognizer // nil when the cloud fallback is disabled
	opts      PipelineOptions
}

// NewDocumentService constructs a new DocumentService. fallback may be nil.
func NewDocumentService(store storage.Storage, repo repository.DocumentRepository, engine ocr.Engine, converter PageConverter, fallback ocr.DocumentRecognizer, opts PipelineOptions) DocumentService {
	if opts.FallbackMinChars <= 0 {
		opts.FallbackMinChars = 100
	}
	if opts.Workers <= 0 {
		opts.Workers = 2
	}
	return &documentService{
		store:     store,
		repo:      repo,
		engine:    engine,
		converter: converter,
		fallback:  fallback,
		opts:      opts,
	}
}

func isPDF(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".pdf")
}

// extract runs the local engine: PDFs are rasterized page by page, everything
// else is handed to the engine as a single image.
func (s *documentService) extract(ctx context.Context, data []byte, filename string) (text string, pageCount int, err error) {
	if isPDF(filename) {
		images, err := s.converter.Images(ctx, data)
		if err != nil {
			return "", 0, fmt.Errorf("render pdf pages: %w", err)
		}
		texts, err := ocr.RecognizePages(ctx, s.engine, images, s.opts.Workers)
		if err != nil {
			return "", len(images), err
		}
		return ocr.JoinPages(texts), len(images), nil
	}

	t, err := s.engine.Recognize(ctx, data)
	if err != nil {
		return "", 1, err
	}
	return t, 1, nil
}

func (s *documentService) tooShort(text string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(text)) < s.opts.FallbackMinChars
}

func (s *documentService) Process(ctx context.Context, r io.Reader, originalFilename string, contentType string, size int64) (*model.Document, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	text, pageCount, extractErr := s.extract(ctx, data, originalFilename)
	source := model.SourceTesseract

	if s.fallback != nil && (extractErr != nil || s.tooShort(text)) {
		fbText, fbErr := s.fallback.RecognizeDocument(ctx, data)
		switch {
		case fbErr == nil:
			text, source = fbText, model.SourceVision
		case extractErr != nil:
			return nil, fmt.Errorf("%w: %v; fallback: %v", ErrNoTextExtracted, extractErr, fbErr)
		default:
			// Short local text, failed fallback: keep the local result.
		}
	} else if extractErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoTextExtracted, extractErr)
	}

	// Archive the original bytes under a generated name (UUID + extension).
	ext := filepath.Ext(originalFilename)
	genName := uuid.New().String() + ext
	key := filepath.ToSlash(filepath.Join("documents", genName))

	objInfo, err := s.store.Put(ctx, key, bytes.NewReader(data), storage.PutObjectOptions{
		Size:        int64(len(data)),
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
			"ocr-source":        source,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	doc := &model.Document{
		ID:          uuid.New().String(),
		Filename:    genName,
		StoragePath: objInfo.Key,
		Size:        objInfo.Size,
		ContentType: objInfo.ContentType,
		Text:        text,
		Source:      source,
		PageCount:   pageCount,
		CreatedAt:   time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

// List returns paginated documents without exposing repository types.
func (s *documentService) List(ctx context.Context, limit, offset int) (*DocumentListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &DocumentListResult{Items: res.Items, Total: res.Total}, nil
}

// Get returns a document by ID.
func (s *documentService) Get(ctx context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

// Delete removes a document from storage, then deletes its record.
func (s *documentService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	// Delete from storage first; if this fails, keep DB row to avoid orphaned storage reference loss
	if err := s.store.Delete(ctx, doc.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	return s.repo.Delete(ctx, id)
}

// Download returns a presigned URL for the stored original upload.
func (s *documentService) Download(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	u, err := s.store.PresignGet(ctx, doc.StoragePath, downloadExpiry)
	if err != nil {
		return "", fmt.Errorf("presign download: %w", err)
	}
	return u, nil
}
