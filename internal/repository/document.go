package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/palmbay/resort/api/internal/database"
	"github.com/palmbay/resort/api/internal/model"
)

// DocumentRepository handles document metadata data access
type DocumentRepository struct {
	db database.Database
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db database.Database) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create persists a new document
func (r *DocumentRepository) Create(ctx context.Context, doc *model.Document) error {
	query := `
		CREATE type::thing('document', $id) CONTENT {
			path: $path,
			title: $title,
			mime_type: $mime_type,
			size_bytes: $size_bytes,
			version: $version,
			status: $status,
			created_at: time::now(),
			updated_at: time::now()
		}
	`
	_, err := r.db.Query(ctx, query, map[string]interface{}{
		"id":         doc.ID,
		"path":       doc.Path,
		"title":      doc.Title,
		"mime_type":  doc.MimeType,
		"size_bytes": doc.SizeBytes,
		"version":    doc.Version,
		"status":     string(doc.Status),
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return model.NewConflictError(model.CodeDuplicatePath,
				fmt.Sprintf("path %q is already taken", doc.Path))
		}
		return fmt.Errorf("failed to create document: %w", err)
	}
	return nil
}

// GetByID retrieves a document, returning (nil, nil) when it does not exist
func (r *DocumentRepository) GetByID(ctx context.Context, id string) (*model.Document, error) {
	query := `SELECT * FROM type::thing('document', $id)`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"id": id})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return parseRecord[model.Document](result)
}

// GetByPath retrieves a document by its unique path
func (r *DocumentRepository) GetByPath(ctx context.Context, path string) (*model.Document, error) {
	query := `SELECT * FROM document WHERE path = $path`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"path": path})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get document by path: %w", err)
	}
	return parseRecord[model.Document](result)
}

// List retrieves documents, optionally filtered by status
func (r *DocumentRepository) List(ctx context.Context, status *model.DocumentStatus) ([]*model.Document, error) {
	query := `SELECT * FROM document ORDER BY path ASC`
	vars := map[string]interface{}{}
	if status != nil {
		query = `SELECT * FROM document WHERE status = $status ORDER BY path ASC`
		vars["status"] = string(*status)
	}
	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return parseRecords[model.Document](result)
}

// Update applies field updates and returns the updated document
func (r *DocumentRepository) Update(ctx context.Context, id string, updates map[string]interface{}) (*model.Document, error) {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)

	query := fmt.Sprintf("UPDATE type::thing('document', $id) SET %s", setClause(updates))
	updates["id"] = id

	if err := r.db.Execute(ctx, query, updates); err != nil {
		return nil, fmt.Errorf("failed to update document: %w", err)
	}
	return r.GetByID(ctx, id)
}

// Delete removes a document record
func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE type::thing('document', $id)`
	if err := r.db.Execute(ctx, query, map[string]interface{}{"id": id}); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}
