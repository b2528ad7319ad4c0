package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockEngine is a testify mock of ocr.Engine.
type MockEngine struct {
	mock.Mock
}

func (m *MockEngine) Recognize(ctx context.Context, image []byte) (string, error) {
	args := m.Called(ctx, image)
	return args.String(0), args.Error(1)
}

func (m *MockEngine) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockEngine) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockPageConverter is a testify mock of service.PageConverter.
type MockPageConverter struct {
	mock.Mock
}

func (m *MockPageConverter) Images(ctx context.Context, pdf []byte) ([][]byte, error) {
	args := m.Called(ctx, pdf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]byte), args.Error(1)
}

// MockDocumentRecognizer is a testify mock of ocr.DocumentRecognizer.
type MockDocumentRecognizer struct {
	mock.Mock
}

func (m *MockDocumentRecognizer) RecognizeDocument(ctx context.Context, content []byte) (string, error) {
	args := m.Called(ctx, content)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentRecognizer) Close() error {
	args := m.Called()
	return args.Error(0)
}
