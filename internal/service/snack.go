package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/palmbay/resort/api/internal/model"
	"github.com/shopspring/decimal"
)

// SnackRepository defines the interface for snack catalog and order storage
type SnackRepository interface {
	CreateItem(ctx context.Context, item *model.SnackItem) error
	GetItem(ctx context.Context, id string) (*model.SnackItem, error)
	GetItemByCode(ctx context.Context, code string) (*model.SnackItem, error)
	ListItems(ctx context.Context, category *string) ([]*model.SnackItem, error)
	UpdateItem(ctx context.Context, id string, updates map[string]interface{}) (*model.SnackItem, error)
	CreateOrder(ctx context.Context, order *model.SnackOrder) error
	GetOrder(ctx context.Context, id string) (*model.SnackOrder, error)
	ListOrdersByGuest(ctx context.Context, guestID string) ([]*model.SnackOrder, error)
	ListOrdersBetween(ctx context.Context, startDate, endDate string) ([]*model.SnackOrder, error)
	UpdateOrder(ctx context.Context, id string, updates map[string]interface{}) (*model.SnackOrder, error)
}

// SnackService manages the poolside snack catalog and its order flow.
type SnackService struct {
	repo     SnackRepository
	activity *ActivityRecorder
}

// SnackServiceConfig holds configuration for the snack service
type SnackServiceConfig struct {
	Repo     SnackRepository
	Activity *ActivityRecorder
}

// NewSnackService creates a new snack service
func NewSnackService(cfg SnackServiceConfig) *SnackService {
	return &SnackService{repo: cfg.Repo, activity: cfg.Activity}
}

// CreateItem adds a catalog item. Codes are globally unique.
func (s *SnackService) CreateItem(ctx context.Context, req *model.CreateSnackItemRequest) (*model.SnackItem, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}

	existing, err := s.repo.GetItemByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, model.NewConflictError(model.CodeDuplicateCode,
			fmt.Sprintf("item code %q already exists", req.Code))
	}

	price, _ := decimal.NewFromString(req.Price) // validated above
	item := &model.SnackItem{
		ID:       uuid.NewString(),
		Code:     req.Code,
		Name:     req.Name,
		Category: req.Category,
		Price:    price,
		Status:   model.SnackItemStatusActive,
	}
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	s.activity.Record(ctx, "snack_item", item.ID, "created", map[string]any{"code": item.Code})
	return item, nil
}

// GetItem retrieves a catalog item by ID.
func (s *SnackService) GetItem(ctx context.Context, id string) (*model.SnackItem, error) {
	if fe := model.CheckUUID("id", "INVALID_ITEM_ID", id); fe != nil {
		return nil, model.NewValidationError([]model.FieldError{*fe})
	}
	item, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	return item, nil
}

// ListItems lists catalog items, optionally by category.
func (s *SnackService) ListItems(ctx context.Context, category *string) ([]*model.SnackItem, error) {
	if category != nil {
		if fe := model.CheckEnum("category", "INVALID_CATEGORY", *category,
			model.SnackCategoryDrinks, model.SnackCategorySnacks,
			model.SnackCategoryMeals, model.SnackCategoryDesserts); fe != nil {
			return nil, model.NewValidationError([]model.FieldError{*fe})
		}
	}
	return s.repo.ListItems(ctx, category)
}

// UpdateItem edits a catalog item. Captured order lines keep the price they
// were placed at.
func (s *SnackService) UpdateItem(ctx context.Context, id string, req *model.UpdateSnackItemRequest) (*model.SnackItem, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}
	if _, err := s.GetItem(ctx, id); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if len(updates) == 0 {
		return s.GetItem(ctx, id)
	}
	return s.repo.UpdateItem(ctx, id, updates)
}

// DeactivateItem removes an item from sale without deleting its history.
func (s *SnackService) DeactivateItem(ctx context.Context, id string) (*model.SnackItem, error) {
	return s.setItemStatus(ctx, id, model.SnackItemStatusInactive, "deactivated")
}

// ReactivateItem puts an inactive item back on sale.
func (s *SnackService) ReactivateItem(ctx context.Context, id string) (*model.SnackItem, error) {
	return s.setItemStatus(ctx, id, model.SnackItemStatusActive, "reactivated")
}

func (s *SnackService) setItemStatus(ctx context.Context, id string, status model.SnackItemStatus, action string) (*model.SnackItem, error) {
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.Status == status {
		return nil, model.NewInvalidStatusError("snack item", string(item.Status), string(status))
	}
	updated, err := s.repo.UpdateItem(ctx, id, map[string]interface{}{"status": string(status)})
	if err != nil {
		return nil, err
	}
	s.activity.Record(ctx, "snack_item", id, action, nil)
	return updated, nil
}

// CreateOrder places an order. Every line must reference an active item;
// unit prices are captured from the catalog at this moment.
func (s *SnackService) CreateOrder(ctx context.Context, req *model.CreateOrderRequest) (*model.SnackOrder, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}

	lines := make([]model.OrderLine, 0, len(req.Lines))
	total := decimal.Zero
	for _, lr := range req.Lines {
		item, err := s.repo.GetItem(ctx, lr.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, ErrItemNotFound
		}
		if item.Status != model.SnackItemStatusActive {
			return nil, model.NewInvalidInputError("INVALID_ITEM",
				fmt.Sprintf("item %q is not orderable", item.Code))
		}
		lineTotal := item.Price.Mul(decimal.NewFromInt(int64(lr.Quantity)))
		lines = append(lines, model.OrderLine{
			ItemID:    item.ID,
			Code:      item.Code,
			Quantity:  lr.Quantity,
			UnitPrice: item.Price,
			LineTotal: lineTotal,
		})
		total = total.Add(lineTotal)
	}

	order := &model.SnackOrder{
		ID:       uuid.NewString(),
		GuestID:  req.GuestID,
		Location: req.Location,
		Lines:    lines,
		Total:    total,
		Status:   model.OrderStatusPending,
	}
	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, "order", order.ID, "placed", map[string]any{
		"lines": len(lines), "total": money(total),
	})
	return order, nil
}

// GetOrder retrieves an order by ID.
func (s *SnackService) GetOrder(ctx context.Context, id string) (*model.SnackOrder, error) {
	if fe := model.CheckUUID("id", "INVALID_ORDER_ID", id); fe != nil {
		return nil, model.NewValidationError([]model.FieldError{*fe})
	}
	order, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetGuestOrders lists a guest's orders.
func (s *SnackService) GetGuestOrders(ctx context.Context, guestID string) ([]*model.SnackOrder, error) {
	if fe := model.CheckUUID("guest_id", "INVALID_GUEST_ID", guestID); fe != nil {
		return nil, model.NewValidationError([]model.FieldError{*fe})
	}
	return s.repo.ListOrdersByGuest(ctx, guestID)
}

// StartPreparing moves a pending order into the kitchen.
func (s *SnackService) StartPreparing(ctx context.Context, id string) (*model.SnackOrder, error) {
	return s.transitionOrder(ctx, id, model.OrderStatusPreparing, "preparing")
}

// MarkDelivered completes a prepared order.
func (s *SnackService) MarkDelivered(ctx context.Context, id string) (*model.SnackOrder, error) {
	return s.transitionOrder(ctx, id, model.OrderStatusDelivered, "delivered")
}

// CancelOrder voids an order that has not been delivered.
func (s *SnackService) CancelOrder(ctx context.Context, id string) (*model.SnackOrder, error) {
	return s.transitionOrder(ctx, id, model.OrderStatusCancelled, "cancelled")
}

func (s *SnackService) transitionOrder(ctx context.Context, id string, next model.OrderStatus, action string) (*model.SnackOrder, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := guardTransition("order", orderTransitions, string(order.Status), string(next)); err != nil {
		return nil, err
	}
	updated, err := s.repo.UpdateOrder(ctx, id, map[string]interface{}{"status": string(next)})
	if err != nil {
		return nil, err
	}
	s.activity.Record(ctx, "order", id, action, nil)
	return updated, nil
}

// GetOrderStats aggregates orders over an inclusive date window. Revenue and
// the average only count delivered orders.
func (s *SnackService) GetOrderStats(ctx context.Context, startDate, endDate string) (*model.OrderStats, error) {
	if err := checkWindow(startDate, endDate); err != nil {
		return nil, err
	}
	orders, err := s.repo.ListOrdersBetween(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}

	stats := &model.OrderStats{
		TotalOrders: len(orders),
		ByStatus:    make(map[model.OrderStatus]int),
	}
	revenue := decimal.Zero
	delivered := 0
	for _, order := range orders {
		stats.ByStatus[order.Status]++
		if order.Status == model.OrderStatusDelivered {
			revenue = revenue.Add(order.Total)
			delivered++
		}
	}
	stats.DeliveredRevenue = money(revenue)
	stats.AverageOrderValue = money(safeAverage(revenue, delivered))
	return stats, nil
}
