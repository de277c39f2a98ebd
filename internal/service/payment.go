package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/palmbay/resort/api/internal/model"
	"github.com/shopspring/decimal"
)

// PaymentRepository defines the interface for payment storage
type PaymentRepository interface {
	Create(ctx context.Context, p *model.Payment) error
	GetByID(ctx context.Context, id string) (*model.Payment, error)
	List(ctx context.Context, filter model.PaymentFilter) ([]*model.Payment, error)
	ListByReference(ctx context.Context, ref model.PaymentReference) ([]*model.Payment, error)
	ListBetween(ctx context.Context, startDate, endDate string) ([]*model.Payment, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) (*model.Payment, error)
}

// PaymentService handles money transactions against bookings, pool tickets,
// snack orders and package purchases.
type PaymentService struct {
	repo     PaymentRepository
	activity *ActivityRecorder
}

// PaymentServiceConfig holds configuration for the payment service
type PaymentServiceConfig struct {
	Repo     PaymentRepository
	Activity *ActivityRecorder
}

// NewPaymentService creates a new payment service
func NewPaymentService(cfg PaymentServiceConfig) *PaymentService {
	return &PaymentService{repo: cfg.Repo, activity: cfg.Activity}
}

// CreatePayment registers a pending payment.
func (s *PaymentService) CreatePayment(ctx context.Context, req *model.CreatePaymentRequest) (*model.Payment, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}

	amount, _ := decimal.NewFromString(req.Amount) // validated above

	p := &model.Payment{
		ID: uuid.NewString(),
		Reference: model.PaymentReference{
			Type: model.ReferenceType(req.ReferenceType),
			ID:   req.ReferenceID,
		},
		Amount:         amount,
		Currency:       req.Currency,
		Method:         model.PaymentMethod(req.Method),
		Status:         model.PaymentStatusPending,
		RefundedAmount: decimal.Zero,
		Notes:          req.Notes,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, "payment", p.ID, "created", map[string]any{
		"amount": p.Amount.String(), "currency": p.Currency,
	})
	return p, nil
}

// GetPayment retrieves a payment by ID.
func (s *PaymentService) GetPayment(ctx context.Context, id string) (*model.Payment, error) {
	if fe := model.CheckUUID("id", "INVALID_PAYMENT_ID", id); fe != nil {
		return nil, model.NewValidationError([]model.FieldError{*fe})
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPaymentNotFound
	}
	return p, nil
}

// GetPaymentsByReference retrieves all payments settling one reference.
func (s *PaymentService) GetPaymentsByReference(ctx context.Context, refType, refID string) ([]*model.Payment, error) {
	var errs []model.FieldError
	if fe := model.CheckEnum("reference_type", "INVALID_REFERENCE_TYPE", refType,
		string(model.ReferenceTypeBooking), string(model.ReferenceTypePoolTicket),
		string(model.ReferenceTypeSnackOrder), string(model.ReferenceTypePackage)); fe != nil {
		errs = append(errs, *fe)
	}
	if fe := model.CheckUUID("reference_id", "INVALID_REFERENCE_ID", refID); fe != nil {
		errs = append(errs, *fe)
	}
	if len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}
	return s.repo.ListByReference(ctx, model.PaymentReference{
		Type: model.ReferenceType(refType),
		ID:   refID,
	})
}

// ListPayments returns one page of payments matching the filter. The page
// reports whether more records follow.
func (s *PaymentService) ListPayments(ctx context.Context, filter model.PaymentFilter) (*model.PaymentPage, error) {
	if filter.Limit == 0 {
		filter.Limit = 20
	}
	if errs := filter.Validate(); len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}

	// Fetch one extra record to learn whether the page is the last one.
	probe := filter
	probe.Limit = filter.Limit + 1
	payments, err := s.repo.List(ctx, probe)
	if err != nil {
		return nil, err
	}

	hasMore := len(payments) > filter.Limit
	if hasMore {
		payments = payments[:filter.Limit]
	}
	return &model.PaymentPage{Payments: payments, HasMore: hasMore}, nil
}

// CompletePayment marks a pending payment as captured.
func (s *PaymentService) CompletePayment(ctx context.Context, id string) (*model.Payment, error) {
	return s.transition(ctx, id, model.PaymentStatusCompleted, nil)
}

// FailPayment marks a pending payment as failed.
func (s *PaymentService) FailPayment(ctx context.Context, id string) (*model.Payment, error) {
	return s.transition(ctx, id, model.PaymentStatusFailed, nil)
}

// CancelPayment cancels a pending payment.
func (s *PaymentService) CancelPayment(ctx context.Context, id string) (*model.Payment, error) {
	return s.transition(ctx, id, model.PaymentStatusCancelled, nil)
}

// RefundPayment refunds a completed payment. An empty amount refunds the
// full captured amount; a given amount must not exceed what remains.
func (s *PaymentService) RefundPayment(ctx context.Context, id, amount string) (*model.Payment, error) {
	p, err := s.GetPayment(ctx, id)
	if err != nil {
		return nil, err
	}

	refund := p.Amount.Sub(p.RefundedAmount)
	if amount != "" {
		parsed, fe := model.ParseMoney("amount", "INVALID_REFUND_AMOUNT", amount)
		if fe != nil {
			return nil, model.NewValidationError([]model.FieldError{*fe})
		}
		if parsed.GreaterThan(refund) {
			return nil, model.NewInvalidInputError("INVALID_REFUND_AMOUNT",
				"refund exceeds the remaining captured amount")
		}
		refund = parsed
	}

	if err := guardTransition("payment", paymentTransitions,
		string(p.Status), string(model.PaymentStatusRefunded)); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, map[string]interface{}{
		"status":          string(model.PaymentStatusRefunded),
		"refunded_amount": p.RefundedAmount.Add(refund).String(),
	})
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, "payment", id, "refunded", map[string]any{"amount": refund.String()})
	return updated, nil
}

// GetPaymentStats aggregates payments in the inclusive [startDate, endDate]
// window; empty bounds mean unbounded. Revenue and the average count only
// completed payments, the transaction count covers every status.
func (s *PaymentService) GetPaymentStats(ctx context.Context, startDate, endDate string) (*model.PaymentStats, error) {
	payments, err := s.listWindow(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}

	revenue := decimal.Zero
	completed := 0
	byStatus := make(map[model.PaymentStatus]int)
	byMethod := make(map[model.PaymentMethod]int)

	for _, p := range payments {
		byStatus[p.Status]++
		byMethod[p.Method]++
		if p.Status == model.PaymentStatusCompleted {
			revenue = revenue.Add(p.Amount)
			completed++
		}
	}

	return &model.PaymentStats{
		TotalRevenue:            money(revenue),
		TotalTransactions:       len(payments),
		AverageTransactionValue: money(safeAverage(revenue, completed)),
		ByStatus:                byStatus,
		ByMethod:                byMethod,
	}, nil
}

// GetDailyRevenue returns one point per date in [startDate, endDate], zero
// for dates with no completed payments.
func (s *PaymentService) GetDailyRevenue(ctx context.Context, startDate, endDate string) ([]model.DailyRevenuePoint, error) {
	keys, err := dateKeys(startDate, endDate)
	if err != nil {
		return nil, err
	}

	payments, err := s.repo.ListBetween(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}

	sums := make(map[string]decimal.Decimal, len(keys))
	counts := make(map[string]int, len(keys))
	for _, p := range payments {
		if p.Status != model.PaymentStatusCompleted {
			continue
		}
		day := p.CreatedAt.UTC().Format(model.DateKeyLayout)
		sums[day] = sums[day].Add(p.Amount)
		counts[day]++
	}

	series := make([]model.DailyRevenuePoint, 0, len(keys))
	for _, day := range keys {
		series = append(series, model.DailyRevenuePoint{
			Date:   day,
			Amount: money(sums[day]),
			Count:  counts[day],
		})
	}
	return series, nil
}

func (s *PaymentService) listWindow(ctx context.Context, startDate, endDate string) ([]*model.Payment, error) {
	var errs []model.FieldError
	if startDate != "" {
		if _, fe := model.ParseDateKey("start_date", "INVALID_START_DATE", startDate); fe != nil {
			errs = append(errs, *fe)
		}
	}
	if endDate != "" {
		if _, fe := model.ParseDateKey("end_date", "INVALID_END_DATE", endDate); fe != nil {
			errs = append(errs, *fe)
		}
	}
	if len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}
	return s.repo.ListBetween(ctx, startDate, endDate)
}

func (s *PaymentService) transition(ctx context.Context, id string, next model.PaymentStatus, extra map[string]interface{}) (*model.Payment, error) {
	p, err := s.GetPayment(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := guardTransition("payment", paymentTransitions, string(p.Status), string(next)); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"status": string(next)}
	for k, v := range extra {
		updates[k] = v
	}
	updated, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, "payment", id, string(next), nil)
	return updated, nil
}
