package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/palmbay/resort/api/internal/model"
)

// DocumentRepository defines the interface for document metadata storage
type DocumentRepository interface {
	Create(ctx context.Context, doc *model.Document) error
	GetByID(ctx context.Context, id string) (*model.Document, error)
	GetByPath(ctx context.Context, path string) (*model.Document, error)
	List(ctx context.Context, status *model.DocumentStatus) ([]*model.Document, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) (*model.Document, error)
	Delete(ctx context.Context, id string) error
}

// DocumentService manages guest-facing document metadata: unique paths, a
// draft/publish lifecycle and a strictly increasing content version.
type DocumentService struct {
	repo     DocumentRepository
	activity *ActivityRecorder
}

// DocumentServiceConfig holds configuration for the document service
type DocumentServiceConfig struct {
	Repo     DocumentRepository
	Activity *ActivityRecorder
}

// NewDocumentService creates a new document service
func NewDocumentService(cfg DocumentServiceConfig) *DocumentService {
	return &DocumentService{repo: cfg.Repo, activity: cfg.Activity}
}

// CreateDocument registers a document at version 1. Paths are globally
// unique.
func (s *DocumentService) CreateDocument(ctx context.Context, req *model.CreateDocumentRequest) (*model.Document, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}

	existing, err := s.repo.GetByPath(ctx, req.Path)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, model.NewConflictError(model.CodeDuplicatePath,
			fmt.Sprintf("path %q is already taken", req.Path))
	}

	doc := &model.Document{
		ID:        uuid.NewString(),
		Path:      req.Path,
		Title:     req.Title,
		MimeType:  req.MimeType,
		SizeBytes: req.SizeBytes,
		Version:   1,
		Status:    model.DocumentStatusDraft,
	}
	if err := s.repo.Create(ctx, doc); err != nil {
		return nil, err
	}
	s.activity.Record(ctx, "document", doc.ID, "created", map[string]any{"path": doc.Path})
	return doc, nil
}

// GetDocument retrieves a document by ID.
func (s *DocumentService) GetDocument(ctx context.Context, id string) (*model.Document, error) {
	if fe := model.CheckUUID("id", "INVALID_DOCUMENT_ID", id); fe != nil {
		return nil, model.NewValidationError([]model.FieldError{*fe})
	}
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrDocumentNotFound
	}
	return doc, nil
}

// GetDocumentByPath retrieves a document by its unique path.
func (s *DocumentService) GetDocumentByPath(ctx context.Context, path string) (*model.Document, error) {
	doc, err := s.repo.GetByPath(ctx, path)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrDocumentNotFound
	}
	return doc, nil
}

// ListDocuments lists documents, optionally by status.
func (s *DocumentService) ListDocuments(ctx context.Context, status *model.DocumentStatus) ([]*model.Document, error) {
	if status != nil {
		if fe := model.CheckEnum("status", "INVALID_DOCUMENT_STATUS", string(*status),
			string(model.DocumentStatusDraft), string(model.DocumentStatusPublished),
			string(model.DocumentStatusArchived)); fe != nil {
			return nil, model.NewValidationError([]model.FieldError{*fe})
		}
	}
	return s.repo.List(ctx, status)
}

// UpdateContent replaces a document's content and bumps the version. The
// version never decreases or repeats.
func (s *DocumentService) UpdateContent(ctx context.Context, id string, req *model.UpdateDocumentContentRequest) (*model.Document, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}

	doc, err := s.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.Status == model.DocumentStatusArchived {
		return nil, model.NewInvalidStatusError("document", string(doc.Status), string(doc.Status))
	}

	updates := map[string]interface{}{
		"size_bytes": req.SizeBytes,
		"version":    doc.Version + 1,
	}
	if req.MimeType != nil {
		updates["mime_type"] = *req.MimeType
	}
	updated, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return nil, err
	}
	s.activity.Record(ctx, "document", id, "content_updated", map[string]any{"version": updated.Version})
	return updated, nil
}

// PublishDocument makes a draft visible to guests.
func (s *DocumentService) PublishDocument(ctx context.Context, id string) (*model.Document, error) {
	return s.transition(ctx, id, model.DocumentStatusPublished, "published")
}

// ArchiveDocument retires a published document.
func (s *DocumentService) ArchiveDocument(ctx context.Context, id string) (*model.Document, error) {
	return s.transition(ctx, id, model.DocumentStatusArchived, "archived")
}

// DeleteDocument removes a draft. Anything that was ever published is
// archived instead so its path stays on record.
func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	doc, err := s.GetDocument(ctx, id)
	if err != nil {
		return err
	}
	if doc.Status != model.DocumentStatusDraft {
		return model.NewInvalidStatusError("document", string(doc.Status), string(model.DocumentStatusDraft))
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.activity.Record(ctx, "document", id, "deleted", map[string]any{"path": doc.Path})
	return nil
}

func (s *DocumentService) transition(ctx context.Context, id string, next model.DocumentStatus, action string) (*model.Document, error) {
	doc, err := s.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := guardTransition("document", documentTransitions, string(doc.Status), string(next)); err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, id, map[string]interface{}{"status": string(next)})
	if err != nil {
		return nil, err
	}
	s.activity.Record(ctx, "document", id, action, nil)
	return updated, nil
}
