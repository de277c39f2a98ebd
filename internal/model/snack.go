package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SnackItemStatus constants
type SnackItemStatus string

const (
	SnackItemStatusActive   SnackItemStatus = "active"
	SnackItemStatusInactive SnackItemStatus = "inactive"
)

// SnackCategory constants
const (
	SnackCategoryDrinks   = "drinks"
	SnackCategorySnacks   = "snacks"
	SnackCategoryMeals    = "meals"
	SnackCategoryDesserts = "desserts"
)

// SnackItem is a catalog entry orderable poolside. Codes are globally
// unique.
type SnackItem struct {
	ID        string          `json:"id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price"`
	Status    SnackItemStatus `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// OrderStatus constants
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// MaxOrderLineQuantity bounds a single order line.
const MaxOrderLineQuantity = 50

// OrderLine is one item position within an order. Unit price is captured at
// order time so later catalog edits don't rewrite history.
type OrderLine struct {
	ItemID    string          `json:"item_id"`
	Code      string          `json:"code"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// SnackOrder is a guest's poolside order.
type SnackOrder struct {
	ID        string          `json:"id"`
	GuestID   string          `json:"guest_id"`
	Location  *string         `json:"location,omitempty"`
	Lines     []OrderLine     `json:"lines"`
	Total     decimal.Decimal `json:"total"`
	Status    OrderStatus     `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CreateSnackItemRequest carries the fields for adding a catalog item.
type CreateSnackItemRequest struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    string `json:"price"`
}

// Validate checks all fields and returns every violation found.
func (r *CreateSnackItemRequest) Validate() []FieldError {
	var errs []FieldError

	if r.Code == "" || len(r.Code) > MaxPackageCodeLength {
		errs = append(errs, FieldError{Field: "code", Code: "INVALID_CODE",
			Message: "must be 1-32 characters"})
	}
	if r.Name == "" {
		errs = append(errs, FieldError{Field: "name", Code: "INVALID_NAME", Message: "is required"})
	}
	if fe := CheckEnum("category", "INVALID_CATEGORY", r.Category,
		SnackCategoryDrinks, SnackCategorySnacks, SnackCategoryMeals, SnackCategoryDesserts); fe != nil {
		errs = append(errs, *fe)
	}
	if _, fe := ParseMoney("price", "INVALID_PRICE", r.Price); fe != nil {
		errs = append(errs, *fe)
	}
	return errs
}

// UpdateSnackItemRequest edits a catalog item. Nil fields are untouched.
type UpdateSnackItemRequest struct {
	Name  *string `json:"name,omitempty"`
	Price *string `json:"price,omitempty"`
}

// Validate checks the fields that are present.
func (r *UpdateSnackItemRequest) Validate() []FieldError {
	var errs []FieldError

	if r.Name != nil && *r.Name == "" {
		errs = append(errs, FieldError{Field: "name", Code: "INVALID_NAME", Message: "must not be empty"})
	}
	if r.Price != nil {
		if _, fe := ParseMoney("price", "INVALID_PRICE", *r.Price); fe != nil {
			errs = append(errs, *fe)
		}
	}
	return errs
}

// OrderLineRequest selects an item and quantity for a new order.
type OrderLineRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// CreateOrderRequest carries the fields for placing an order.
type CreateOrderRequest struct {
	GuestID  string             `json:"guest_id"`
	Location *string            `json:"location,omitempty"`
	Lines    []OrderLineRequest `json:"lines"`
}

// Validate checks all fields and returns every violation found.
func (r *CreateOrderRequest) Validate() []FieldError {
	var errs []FieldError

	if fe := CheckUUID("guest_id", "INVALID_GUEST_ID", r.GuestID); fe != nil {
		errs = append(errs, *fe)
	}
	if len(r.Lines) == 0 {
		errs = append(errs, FieldError{Field: "lines", Code: "INVALID_ORDER", Message: "order needs at least one line"})
	}
	for _, line := range r.Lines {
		if fe := CheckUUID("lines.item_id", "INVALID_ITEM_ID", line.ItemID); fe != nil {
			errs = append(errs, *fe)
		}
		if fe := CheckIntRange("lines.quantity", "INVALID_QUANTITY", line.Quantity, 1, MaxOrderLineQuantity); fe != nil {
			errs = append(errs, *fe)
		}
	}
	return errs
}

// OrderStats aggregates an already-fetched order list.
type OrderStats struct {
	TotalOrders       int                 `json:"total_orders"`
	DeliveredRevenue  string              `json:"delivered_revenue"`
	AverageOrderValue string              `json:"average_order_value"`
	ByStatus          map[OrderStatus]int `json:"by_status"`
}
