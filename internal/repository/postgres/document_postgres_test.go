package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"ocrapi/internal/model"
	"ocrapi/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var testColumns = []string{"id", "filename", "storage_path", "size", "content_type", "ocr_text", "ocr_source", "page_count", "created_at"}

func TestDocumentPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	doc := &model.Document{
		ID:          "test-uuid",
		Filename:    "scan.pdf",
		StoragePath: "documents/test-uuid.pdf",
		Size:        2048,
		ContentType: "application/pdf",
		Text:        "invoice number 42",
		Source:      model.SourceTesseract,
		PageCount:   3,
		CreatedAt:   now,
	}

	rows := sqlmock.NewRows(testColumns).
		AddRow(doc.ID, doc.Filename, doc.StoragePath, doc.Size, doc.ContentType, doc.Text, doc.Source, doc.PageCount, doc.CreatedAt)

	mock.ExpectQuery("INSERT INTO documents").
		WithArgs(doc.ID, doc.Filename, doc.StoragePath, doc.Size, doc.ContentType, doc.Text, doc.Source, doc.PageCount, doc.CreatedAt).
		WillReturnRows(rows)

	result, err := repo.Create(ctx, doc)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, doc.ID, result.ID)
	assert.Equal(t, doc.Text, result.Text)
	assert.Equal(t, doc.Source, result.Source)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(testColumns).
			AddRow("id-1", "page.png", "documents/id-1.png", 512, "image/png", "hello", model.SourceVision, 1, time.Now())

		mock.ExpectQuery("WHERE id =").
			WithArgs("id-1").
			WillReturnRows(rows)

		doc, err := repo.FindByID(ctx, "id-1")
		assert.NoError(t, err)
		assert.Equal(t, "id-1", doc.ID)
		assert.Equal(t, model.SourceVision, doc.Source)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("WHERE id =").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		doc, err := repo.FindByID(ctx, "missing")
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, doc)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDocumentPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("page with totals", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

		rows := sqlmock.NewRows(testColumns).
			AddRow("id-1", "a.pdf", "documents/id-1.pdf", 1, "application/pdf", "a", model.SourceTesseract, 1, time.Now()).
			AddRow("id-2", "b.png", "documents/id-2.png", 2, "image/png", "b", model.SourceVision, 1, time.Now())

		mock.ExpectQuery("ORDER BY created_at").
			WithArgs(2, 0).
			WillReturnRows(rows)

		res, err := repo.List(ctx, repository.PageQuery{Limit: 2, Offset: 0})
		assert.NoError(t, err)
		assert.Len(t, res.Items, 2)
		assert.Equal(t, 12, res.Total)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("count error", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT").
			WillReturnError(errors.New("count fail"))

		res, err := repo.List(ctx, repository.PageQuery{Limit: 10, Offset: 0})
		assert.Error(t, err)
		assert.Nil(t, res)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDocumentPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("deleted", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM documents").
			WithArgs("id-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, "id-1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row is not an error", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM documents").
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, repo.Delete(ctx, "missing"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("exec error", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM documents").
			WithArgs("id-1").
			WillReturnError(errors.New("exec fail"))

		assert.Error(t, repo.Delete(ctx, "id-1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
