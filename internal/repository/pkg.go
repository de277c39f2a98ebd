package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/palmbay/resort/api/internal/database"
	"github.com/palmbay/resort/api/internal/model"
)

// PackageRepository handles stay-package data access
type PackageRepository struct {
	db database.Database
}

// NewPackageRepository creates a new package repository
func NewPackageRepository(db database.Database) *PackageRepository {
	return &PackageRepository{db: db}
}

// Create persists a new package
func (r *PackageRepository) Create(ctx context.Context, pkg *model.Package) error {
	query := `
		CREATE type::thing('package', $id) CONTENT {
			code: $code,
			name: $name,
			description: $description,
			base_price: $base_price,
			discount_percentage: $discount_percentage,
			redemption_limit: $redemption_limit,
			redemptions: 0,
			valid_from: type::datetime($valid_from),
			valid_to: type::datetime($valid_to),
			status: $status,
			created_at: time::now(),
			updated_at: time::now()
		}
	`
	_, err := r.db.Query(ctx, query, map[string]interface{}{
		"id":                  pkg.ID,
		"code":                pkg.Code,
		"name":                pkg.Name,
		"description":         pkg.Description,
		"base_price":          pkg.BasePrice.String(),
		"discount_percentage": pkg.DiscountPercentage.String(),
		"redemption_limit":    pkg.RedemptionLimit,
		"valid_from":          pkg.ValidFrom.UTC().Format(time.RFC3339),
		"valid_to":            pkg.ValidTo.UTC().Format(time.RFC3339),
		"status":              string(pkg.Status),
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return model.NewConflictError(model.CodeDuplicateCode,
				fmt.Sprintf("package code %q already exists", pkg.Code))
		}
		return fmt.Errorf("failed to create package: %w", err)
	}
	return nil
}

// GetByID retrieves a package, returning (nil, nil) when it does not exist
func (r *PackageRepository) GetByID(ctx context.Context, id string) (*model.Package, error) {
	query := `SELECT * FROM type::thing('package', $id)`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"id": id})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get package: %w", err)
	}
	return parseRecord[model.Package](result)
}

// GetByCode retrieves a package by its unique code
func (r *PackageRepository) GetByCode(ctx context.Context, code string) (*model.Package, error) {
	query := `SELECT * FROM package WHERE code = $code`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"code": code})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get package by code: %w", err)
	}
	return parseRecord[model.Package](result)
}

// List retrieves packages, optionally filtered by status
func (r *PackageRepository) List(ctx context.Context, status *model.PackageStatus) ([]*model.Package, error) {
	query := `SELECT * FROM package ORDER BY created_at DESC`
	vars := map[string]interface{}{}
	if status != nil {
		query = `SELECT * FROM package WHERE status = $status ORDER BY created_at DESC`
		vars["status"] = string(*status)
	}
	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	return parseRecords[model.Package](result)
}

// Update applies field updates and returns the updated package
func (r *PackageRepository) Update(ctx context.Context, id string, updates map[string]interface{}) (*model.Package, error) {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)

	query := fmt.Sprintf("UPDATE type::thing('package', $id) SET %s", setClause(updates))
	updates["id"] = id

	if err := r.db.Execute(ctx, query, updates); err != nil {
		return nil, fmt.Errorf("failed to update package: %w", err)
	}
	return r.GetByID(ctx, id)
}

// ListExpirable retrieves sellable packages whose validity ended before the
// given instant
func (r *PackageRepository) ListExpirable(ctx context.Context, before time.Time) ([]*model.Package, error) {
	query := `
		SELECT * FROM package
		WHERE status IN ['active', 'inactive'] AND valid_to < type::datetime($before)
		ORDER BY valid_to ASC
	`
	result, err := r.db.Query(ctx, query, map[string]interface{}{
		"before": before.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list expirable packages: %w", err)
	}
	return parseRecords[model.Package](result)
}
