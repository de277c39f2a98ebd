package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/palmbay/resort/api/internal/model"
)

// DocumentStore is an in-memory document metadata repository
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]*model.Document
}

// NewDocumentStore creates an empty document store
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{documents: make(map[string]*model.Document)}
}

func (s *DocumentStore) Create(ctx context.Context, doc *model.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.documents {
		if existing.Path == doc.Path {
			return model.NewConflictError(model.CodeDuplicatePath,
				fmt.Sprintf("path %q is already taken", doc.Path))
		}
	}

	now := time.Now().UTC()
	doc.CreatedAt, doc.UpdatedAt = now, now
	s.documents[doc.ID] = clone(doc)
	return nil
}

func (s *DocumentStore) GetByID(ctx context.Context, id string) (*model.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.documents[id]), nil
}

func (s *DocumentStore) GetByPath(ctx context.Context, path string) (*model.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, doc := range s.documents {
		if doc.Path == path {
			return clone(doc), nil
		}
	}
	return nil, nil
}

func (s *DocumentStore) List(ctx context.Context, status *model.DocumentStatus) ([]*model.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*model.Document
	for _, doc := range s.documents {
		if status != nil && doc.Status != *status {
			continue
		}
		out = append(out, clone(doc))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

func (s *DocumentStore) Update(ctx context.Context, id string, updates map[string]interface{}) (*model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.documents[id]
	if !ok {
		return nil, ErrMissing
	}
	updated, err := applyUpdates(doc, updates)
	if err != nil {
		return nil, err
	}
	updated.UpdatedAt = time.Now().UTC()
	s.documents[id] = updated
	return clone(updated), nil
}

func (s *DocumentStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.documents[id]; !ok {
		return ErrMissing
	}
	delete(s.documents, id)
	return nil
}
