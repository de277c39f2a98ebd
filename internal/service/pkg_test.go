package service

import (
	"context"
	"testing"
	"time"

	"github.com/palmbay/resort/api/internal/model"
	"github.com/palmbay/resort/api/internal/repository/memory"
	"github.com/stretchr/testify/require"
)

func newPackageService(repo PackageRepository) *PackageService {
	return NewPackageService(PackageServiceConfig{Repo: repo})
}

func packageReq(code string) *model.CreatePackageRequest {
	return &model.CreatePackageRequest{
		Code:               code,
		Name:               "Summer Escape",
		BasePrice:          "100.00",
		DiscountPercentage: "10",
		ValidFrom:          "2025-06-01T00:00:00Z",
		ValidTo:            "2025-09-01T00:00:00Z",
	}
}

func TestCreatePackage_StartsDraft(t *testing.T) {
	ctx := context.Background()
	svc := newPackageService(memory.NewPackageStore())

	pkg, err := svc.CreatePackage(ctx, packageReq("SUMMER25"))
	require.NoError(t, err)
	require.Equal(t, model.PackageStatusDraft, pkg.Status)
	require.Equal(t, 0, pkg.Redemptions)
	require.NotEmpty(t, pkg.ID)
}

func TestCreatePackage_RejectsDuplicateCode(t *testing.T) {
	ctx := context.Background()
	svc := newPackageService(memory.NewPackageStore())

	_, err := svc.CreatePackage(ctx, packageReq("SUMMER25"))
	require.NoError(t, err)

	_, err = svc.CreatePackage(ctx, packageReq("SUMMER25"))
	require.True(t, model.IsCode(err, model.CodeDuplicateCode), "got %v", err)
}

func TestUpdatePackage_DraftOnly(t *testing.T) {
	ctx := context.Background()
	svc := newPackageService(memory.NewPackageStore())

	pkg, err := svc.CreatePackage(ctx, packageReq("SUMMER25"))
	require.NoError(t, err)

	name := "Summer Escape Deluxe"
	updated, err := svc.UpdatePackage(ctx, pkg.ID, &model.UpdatePackageRequest{Name: &name})
	require.NoError(t, err)
	require.Equal(t, name, updated.Name)

	_, err = svc.PublishPackage(ctx, pkg.ID)
	require.NoError(t, err)

	_, err = svc.UpdatePackage(ctx, pkg.ID, &model.UpdatePackageRequest{Name: &name})
	require.True(t, model.IsCode(err, model.CodeInvalidStatus), "got %v", err)
}

func TestPackageLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newPackageService(memory.NewPackageStore())

	pkg, err := svc.CreatePackage(ctx, packageReq("SUMMER25"))
	require.NoError(t, err)

	pkg, err = svc.PublishPackage(ctx, pkg.ID)
	require.NoError(t, err)
	require.Equal(t, model.PackageStatusActive, pkg.Status)

	pkg, err = svc.DeactivatePackage(ctx, pkg.ID)
	require.NoError(t, err)
	require.Equal(t, model.PackageStatusInactive, pkg.Status)

	pkg, err = svc.ReactivatePackage(ctx, pkg.ID)
	require.NoError(t, err)
	require.Equal(t, model.PackageStatusActive, pkg.Status)

	// A published package can never return to draft.
	_, err = svc.UpdatePackage(ctx, pkg.ID, &model.UpdatePackageRequest{})
	require.True(t, model.IsCode(err, model.CodeInvalidStatus), "got %v", err)
}

func TestCalculatePrice_AppliesDiscountPerStay(t *testing.T) {
	ctx := context.Background()
	svc := newPackageService(memory.NewPackageStore())

	pkg, err := svc.CreatePackage(ctx, packageReq("SUMMER25"))
	require.NoError(t, err)

	quote, err := svc.CalculatePrice(ctx, pkg.ID, 3)
	require.NoError(t, err)
	require.Equal(t, "300.00", quote.BaseTotal)
	require.Equal(t, "30.00", quote.Discount)
	require.Equal(t, "270.00", quote.FinalTotal)
}

func TestCalculatePrice_RoundsAtPresentation(t *testing.T) {
	ctx := context.Background()
	svc := newPackageService(memory.NewPackageStore())

	req := packageReq("ODD")
	req.BasePrice = "99.99"
	req.DiscountPercentage = "7.5"
	pkg, err := svc.CreatePackage(ctx, req)
	require.NoError(t, err)

	// 2 nights: base 199.98, discount 14.9985 -> 15.00, final 184.9815 -> 184.98.
	quote, err := svc.CalculatePrice(ctx, pkg.ID, 2)
	require.NoError(t, err)
	require.Equal(t, "199.98", quote.BaseTotal)
	require.Equal(t, "15.00", quote.Discount)
	require.Equal(t, "184.98", quote.FinalTotal)
}

func TestCalculatePrice_RejectsZeroNights(t *testing.T) {
	svc := newPackageService(memory.NewPackageStore())
	_, err := svc.CalculatePrice(context.Background(), "3b9f0c7d-2a41-4c8e-9f5b-6d1e0a2b3c4d", 0)
	require.True(t, model.IsCode(err, "INVALID_NIGHTS"), "got %v", err)
}

func TestRedeemPackage_FlipsSoldOutAtLimit(t *testing.T) {
	ctx := context.Background()
	svc := newPackageService(memory.NewPackageStore())

	req := packageReq("LIMITED")
	req.RedemptionLimit = 2
	pkg, err := svc.CreatePackage(ctx, req)
	require.NoError(t, err)
	_, err = svc.PublishPackage(ctx, pkg.ID)
	require.NoError(t, err)

	pkg, err = svc.RedeemPackage(ctx, pkg.ID)
	require.NoError(t, err)
	require.Equal(t, 1, pkg.Redemptions)
	require.Equal(t, model.PackageStatusActive, pkg.Status)

	pkg, err = svc.RedeemPackage(ctx, pkg.ID)
	require.NoError(t, err)
	require.Equal(t, 2, pkg.Redemptions)
	require.Equal(t, model.PackageStatusSoldOut, pkg.Status)

	// Sold out means no further redemptions.
	_, err = svc.RedeemPackage(ctx, pkg.ID)
	require.True(t, model.IsCode(err, model.CodeInvalidStatus), "got %v", err)
}

func TestRedeemPackage_UnlimitedNeverSellsOut(t *testing.T) {
	ctx := context.Background()
	svc := newPackageService(memory.NewPackageStore())

	pkg, err := svc.CreatePackage(ctx, packageReq("OPEN"))
	require.NoError(t, err)
	_, err = svc.PublishPackage(ctx, pkg.ID)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		pkg, err = svc.RedeemPackage(ctx, pkg.ID)
		require.NoError(t, err)
	}
	require.Equal(t, 5, pkg.Redemptions)
	require.Equal(t, model.PackageStatusActive, pkg.Status)
}

func TestRedeemPackage_RequiresActive(t *testing.T) {
	ctx := context.Background()
	svc := newPackageService(memory.NewPackageStore())

	pkg, err := svc.CreatePackage(ctx, packageReq("DRAFTED"))
	require.NoError(t, err)

	_, err = svc.RedeemPackage(ctx, pkg.ID)
	require.True(t, model.IsCode(err, model.CodeInvalidStatus), "got %v", err)
}

func TestExpirePackages_SkipsDraftAndSoldOut(t *testing.T) {
	ctx := context.Background()
	svc := newPackageService(memory.NewPackageStore())

	active, err := svc.CreatePackage(ctx, packageReq("ACTIVE"))
	require.NoError(t, err)
	_, err = svc.PublishPackage(ctx, active.ID)
	require.NoError(t, err)

	soldOut, err := svc.CreatePackage(ctx, func() *model.CreatePackageRequest {
		r := packageReq("SOLD")
		r.RedemptionLimit = 1
		return r
	}())
	require.NoError(t, err)
	_, err = svc.PublishPackage(ctx, soldOut.ID)
	require.NoError(t, err)
	_, err = svc.RedeemPackage(ctx, soldOut.ID)
	require.NoError(t, err)

	_, err = svc.CreatePackage(ctx, packageReq("STILLDRAFT"))
	require.NoError(t, err)

	// Past the end of validity for all three.
	after := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	expired, err := svc.ExpirePackages(ctx, after)
	require.NoError(t, err)
	require.Len(t, expired, 1)
	require.Equal(t, active.ID, expired[0].ID)
	require.Equal(t, model.PackageStatusExpired, expired[0].Status)
}
