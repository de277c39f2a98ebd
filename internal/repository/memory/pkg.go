package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/palmbay/resort/api/internal/model"
)

// PackageStore is an in-memory stay-package repository
type PackageStore struct {
	mu       sync.RWMutex
	packages map[string]*model.Package
}

// NewPackageStore creates an empty package store
func NewPackageStore() *PackageStore {
	return &PackageStore{packages: make(map[string]*model.Package)}
}

func (s *PackageStore) Create(ctx context.Context, pkg *model.Package) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.packages {
		if existing.Code == pkg.Code {
			return model.NewConflictError(model.CodeDuplicateCode,
				fmt.Sprintf("package code %q already exists", pkg.Code))
		}
	}

	now := time.Now().UTC()
	pkg.CreatedAt, pkg.UpdatedAt = now, now
	s.packages[pkg.ID] = clone(pkg)
	return nil
}

func (s *PackageStore) GetByID(ctx context.Context, id string) (*model.Package, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.packages[id]), nil
}

func (s *PackageStore) GetByCode(ctx context.Context, code string) (*model.Package, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, pkg := range s.packages {
		if pkg.Code == code {
			return clone(pkg), nil
		}
	}
	return nil, nil
}

func (s *PackageStore) List(ctx context.Context, status *model.PackageStatus) ([]*model.Package, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*model.Package
	for _, pkg := range s.packages {
		if status != nil && pkg.Status != *status {
			continue
		}
		out = append(out, clone(pkg))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *PackageStore) Update(ctx context.Context, id string, updates map[string]interface{}) (*model.Package, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pkg, ok := s.packages[id]
	if !ok {
		return nil, ErrMissing
	}
	updated, err := applyUpdates(pkg, updates)
	if err != nil {
		return nil, err
	}
	updated.UpdatedAt = time.Now().UTC()
	s.packages[id] = updated
	return clone(updated), nil
}

func (s *PackageStore) ListExpirable(ctx context.Context, before time.Time) ([]*model.Package, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*model.Package
	for _, pkg := range s.packages {
		if pkg.Status != model.PackageStatusActive && pkg.Status != model.PackageStatusInactive {
			continue
		}
		if pkg.ValidTo.Before(before) {
			out = append(out, clone(pkg))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ValidTo.Before(out[j].ValidTo) })
	return out, nil
}
