package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/palmbay/resort/api/internal/model"
	"github.com/shopspring/decimal"
)

// PackageRepository defines the interface for stay-package storage
type PackageRepository interface {
	Create(ctx context.Context, pkg *model.Package) error
	GetByID(ctx context.Context, id string) (*model.Package, error)
	GetByCode(ctx context.Context, code string) (*model.Package, error)
	List(ctx context.Context, status *model.PackageStatus) ([]*model.Package, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) (*model.Package, error)
	// ListExpirable returns active or inactive packages whose validity
	// ended before the given instant.
	ListExpirable(ctx context.Context, before time.Time) ([]*model.Package, error)
}

// PackageService manages the stay-package catalog: draft/publish lifecycle,
// price quoting and the monotonic redemption counter.
type PackageService struct {
	repo     PackageRepository
	activity *ActivityRecorder
}

// PackageServiceConfig holds configuration for the package service
type PackageServiceConfig struct {
	Repo     PackageRepository
	Activity *ActivityRecorder
}

// NewPackageService creates a new package service
func NewPackageService(cfg PackageServiceConfig) *PackageService {
	return &PackageService{repo: cfg.Repo, activity: cfg.Activity}
}

// CreatePackage drafts a package. Codes are globally unique.
func (s *PackageService) CreatePackage(ctx context.Context, req *model.CreatePackageRequest) (*model.Package, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}

	existing, err := s.repo.GetByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, model.NewConflictError(model.CodeDuplicateCode,
			fmt.Sprintf("package code %q already exists", req.Code))
	}

	price, _ := decimal.NewFromString(req.BasePrice) // validated above
	discount, _ := decimal.NewFromString(req.DiscountPercentage)
	from, _ := time.Parse(time.RFC3339, req.ValidFrom)
	to, _ := time.Parse(time.RFC3339, req.ValidTo)

	pkg := &model.Package{
		ID:                 uuid.NewString(),
		Code:               req.Code,
		Name:               req.Name,
		Description:        req.Description,
		BasePrice:          price,
		DiscountPercentage: discount,
		RedemptionLimit:    req.RedemptionLimit,
		ValidFrom:          from,
		ValidTo:            to,
		Status:             model.PackageStatusDraft,
	}
	if err := s.repo.Create(ctx, pkg); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, "package", pkg.ID, "drafted", map[string]any{"code": pkg.Code})
	return pkg, nil
}

// GetPackage retrieves a package by ID.
func (s *PackageService) GetPackage(ctx context.Context, id string) (*model.Package, error) {
	if fe := model.CheckUUID("id", "INVALID_PACKAGE_ID", id); fe != nil {
		return nil, model.NewValidationError([]model.FieldError{*fe})
	}
	pkg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, ErrPackageNotFound
	}
	return pkg, nil
}

// ListPackages lists packages, optionally by status.
func (s *PackageService) ListPackages(ctx context.Context, status *model.PackageStatus) ([]*model.Package, error) {
	if status != nil {
		if fe := model.CheckEnum("status", "INVALID_PACKAGE_STATUS", string(*status),
			string(model.PackageStatusDraft), string(model.PackageStatusActive),
			string(model.PackageStatusInactive), string(model.PackageStatusExpired),
			string(model.PackageStatusSoldOut)); fe != nil {
			return nil, model.NewValidationError([]model.FieldError{*fe})
		}
	}
	return s.repo.List(ctx, status)
}

// UpdatePackage edits a draft. Published packages are immutable except
// through their lifecycle methods.
func (s *PackageService) UpdatePackage(ctx context.Context, id string, req *model.UpdatePackageRequest) (*model.Package, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}

	pkg, err := s.GetPackage(ctx, id)
	if err != nil {
		return nil, err
	}
	if pkg.Status != model.PackageStatusDraft {
		return nil, model.NewInvalidStatusError("package", string(pkg.Status), string(model.PackageStatusDraft))
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.BasePrice != nil {
		updates["base_price"] = *req.BasePrice
	}
	if req.DiscountPercentage != nil {
		updates["discount_percentage"] = *req.DiscountPercentage
	}
	if req.RedemptionLimit != nil {
		updates["redemption_limit"] = *req.RedemptionLimit
	}
	if len(updates) == 0 {
		return pkg, nil
	}
	return s.repo.Update(ctx, id, updates)
}

// PublishPackage makes a draft sellable.
func (s *PackageService) PublishPackage(ctx context.Context, id string) (*model.Package, error) {
	return s.transition(ctx, id, model.PackageStatusActive, "published")
}

// DeactivatePackage takes an active package off sale.
func (s *PackageService) DeactivatePackage(ctx context.Context, id string) (*model.Package, error) {
	return s.transition(ctx, id, model.PackageStatusInactive, "deactivated")
}

// ReactivatePackage puts an inactive package back on sale.
func (s *PackageService) ReactivatePackage(ctx context.Context, id string) (*model.Package, error) {
	return s.transition(ctx, id, model.PackageStatusActive, "reactivated")
}

// CalculatePrice quotes a stay of the given nights. Sums stay exact until
// formatting; the quote is rounded half away from zero to two places.
func (s *PackageService) CalculatePrice(ctx context.Context, id string, nights int) (*model.PriceQuote, error) {
	if nights < 1 {
		return nil, model.NewInvalidInputError("INVALID_NIGHTS", "nights must be at least 1")
	}
	pkg, err := s.GetPackage(ctx, id)
	if err != nil {
		return nil, err
	}

	baseTotal := pkg.BasePrice.Mul(decimal.NewFromInt(int64(nights)))
	discount := baseTotal.Mul(pkg.DiscountPercentage).Div(decimal.NewFromInt(100))
	finalTotal := baseTotal.Sub(discount)

	return &model.PriceQuote{
		Nights:     nights,
		BaseTotal:  money(baseTotal),
		Discount:   money(discount),
		FinalTotal: money(finalTotal),
	}, nil
}

// RedeemPackage consumes one redemption of an active package. The counter
// only increases; reaching the limit flips the package to sold_out without
// user involvement.
func (s *PackageService) RedeemPackage(ctx context.Context, id string) (*model.Package, error) {
	pkg, err := s.GetPackage(ctx, id)
	if err != nil {
		return nil, err
	}
	if pkg.Status != model.PackageStatusActive {
		return nil, model.NewInvalidStatusError("package", string(pkg.Status), string(model.PackageStatusActive))
	}

	redemptions := pkg.Redemptions + 1
	updates := map[string]interface{}{"redemptions": redemptions}
	soldOut := pkg.RedemptionLimit > 0 && redemptions >= pkg.RedemptionLimit
	if soldOut {
		updates["status"] = string(model.PackageStatusSoldOut)
	}

	updated, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return nil, err
	}

	action := "redeemed"
	if soldOut {
		action = "sold_out"
	}
	s.activity.Record(ctx, "package", id, action, map[string]any{"redemptions": redemptions})
	return updated, nil
}

// ExpirePackages flips every sellable package whose validity has ended to
// expired and returns the ones it touched.
func (s *PackageService) ExpirePackages(ctx context.Context, now time.Time) ([]*model.Package, error) {
	candidates, err := s.repo.ListExpirable(ctx, now)
	if err != nil {
		return nil, err
	}

	expired := make([]*model.Package, 0, len(candidates))
	for _, pkg := range candidates {
		if err := guardTransition("package", packageTransitions,
			string(pkg.Status), string(model.PackageStatusExpired)); err != nil {
			continue // sold_out and draft packages are left alone
		}
		updated, err := s.repo.Update(ctx, pkg.ID, map[string]interface{}{
			"status": string(model.PackageStatusExpired),
		})
		if err != nil {
			return nil, err
		}
		s.activity.Record(ctx, "package", pkg.ID, "expired", nil)
		expired = append(expired, updated)
	}
	return expired, nil
}

func (s *PackageService) transition(ctx context.Context, id string, next model.PackageStatus, action string) (*model.Package, error) {
	pkg, err := s.GetPackage(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := guardTransition("package", packageTransitions, string(pkg.Status), string(next)); err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, id, map[string]interface{}{"status": string(next)})
	if err != nil {
		return nil, err
	}
	s.activity.Record(ctx, "package", id, action, nil)
	return updated, nil
}
