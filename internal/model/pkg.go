package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PackageStatus constants
type PackageStatus string

const (
	PackageStatusDraft    PackageStatus = "draft"
	PackageStatusActive   PackageStatus = "active"
	PackageStatusInactive PackageStatus = "inactive"
	PackageStatusExpired  PackageStatus = "expired"
	PackageStatusSoldOut  PackageStatus = "sold_out"
)

// MaxPackageCodeLength bounds the globally unique package code.
const MaxPackageCodeLength = 32

// Package is a sellable stay package. The code is globally unique and the
// redemption counter only ever increases; when it reaches the limit the
// package flips to sold_out without user involvement.
type Package struct {
	ID                 string          `json:"id"`
	Code               string          `json:"code"`
	Name               string          `json:"name"`
	Description        *string         `json:"description,omitempty"`
	BasePrice          decimal.Decimal `json:"base_price"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	// RedemptionLimit 0 means unlimited.
	RedemptionLimit int           `json:"redemption_limit"`
	Redemptions     int           `json:"redemptions"`
	ValidFrom       time.Time     `json:"valid_from"`
	ValidTo         time.Time     `json:"valid_to"`
	Status          PackageStatus `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// PriceQuote is the presentation-rounded price breakdown for a stay.
type PriceQuote struct {
	Nights     int    `json:"nights"`
	BaseTotal  string `json:"base_total"`
	Discount   string `json:"discount"`
	FinalTotal string `json:"final_total"`
}

// CreatePackageRequest carries the fields for drafting a package.
type CreatePackageRequest struct {
	Code               string  `json:"code"`
	Name               string  `json:"name"`
	Description        *string `json:"description,omitempty"`
	BasePrice          string  `json:"base_price"`
	DiscountPercentage string  `json:"discount_percentage"`
	RedemptionLimit    int     `json:"redemption_limit"`
	ValidFrom          string  `json:"valid_from"`
	ValidTo            string  `json:"valid_to"`
}

// Validate checks all fields and returns every violation found.
func (r *CreatePackageRequest) Validate() []FieldError {
	var errs []FieldError

	if r.Code == "" || len(r.Code) > MaxPackageCodeLength {
		errs = append(errs, FieldError{Field: "code", Code: "INVALID_CODE",
			Message: "must be 1-32 characters"})
	}
	if r.Name == "" {
		errs = append(errs, FieldError{Field: "name", Code: "INVALID_NAME",
			Message: "is required"})
	}
	if _, fe := ParseMoney("base_price", "INVALID_PRICE", r.BasePrice); fe != nil {
		errs = append(errs, *fe)
	}
	if _, fe := ParsePercent("discount_percentage", "INVALID_DISCOUNT", r.DiscountPercentage); fe != nil {
		errs = append(errs, *fe)
	}
	if r.RedemptionLimit < 0 {
		errs = append(errs, FieldError{Field: "redemption_limit", Code: "INVALID_REDEMPTION_LIMIT",
			Message: "must not be negative"})
	}

	from, feFrom := ParseInstant("valid_from", "INVALID_VALID_FROM", r.ValidFrom)
	if feFrom != nil {
		errs = append(errs, *feFrom)
	}
	to, feTo := ParseInstant("valid_to", "INVALID_VALID_TO", r.ValidTo)
	if feTo != nil {
		errs = append(errs, *feTo)
	}
	if feFrom == nil && feTo == nil {
		if fe := CheckRangePair("valid_to", "INVALID_VALIDITY_RANGE", from, to); fe != nil {
			errs = append(errs, *fe)
		}
	}
	return errs
}

// UpdatePackageRequest edits draft-adjustable fields. Nil fields are
// untouched.
type UpdatePackageRequest struct {
	Name               *string `json:"name,omitempty"`
	Description        *string `json:"description,omitempty"`
	BasePrice          *string `json:"base_price,omitempty"`
	DiscountPercentage *string `json:"discount_percentage,omitempty"`
	RedemptionLimit    *int    `json:"redemption_limit,omitempty"`
}

// Validate checks the fields that are present.
func (r *UpdatePackageRequest) Validate() []FieldError {
	var errs []FieldError

	if r.Name != nil && *r.Name == "" {
		errs = append(errs, FieldError{Field: "name", Code: "INVALID_NAME", Message: "must not be empty"})
	}
	if r.BasePrice != nil {
		if _, fe := ParseMoney("base_price", "INVALID_PRICE", *r.BasePrice); fe != nil {
			errs = append(errs, *fe)
		}
	}
	if r.DiscountPercentage != nil {
		if _, fe := ParsePercent("discount_percentage", "INVALID_DISCOUNT", *r.DiscountPercentage); fe != nil {
			errs = append(errs, *fe)
		}
	}
	if r.RedemptionLimit != nil && *r.RedemptionLimit < 0 {
		errs = append(errs, FieldError{Field: "redemption_limit", Code: "INVALID_REDEMPTION_LIMIT",
			Message: "must not be negative"})
	}
	return errs
}
