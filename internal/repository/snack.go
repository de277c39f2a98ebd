package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/palmbay/resort/api/internal/database"
	"github.com/palmbay/resort/api/internal/model"
)

// SnackRepository handles snack catalog and order data access
type SnackRepository struct {
	db database.Database
}

// NewSnackRepository creates a new snack repository
func NewSnackRepository(db database.Database) *SnackRepository {
	return &SnackRepository{db: db}
}

// CreateItem persists a new catalog item
func (r *SnackRepository) CreateItem(ctx context.Context, item *model.SnackItem) error {
	query := `
		CREATE type::thing('snack_item', $id) CONTENT {
			code: $code,
			name: $name,
			category: $category,
			price: $price,
			status: $status,
			created_at: time::now(),
			updated_at: time::now()
		}
	`
	_, err := r.db.Query(ctx, query, map[string]interface{}{
		"id":       item.ID,
		"code":     item.Code,
		"name":     item.Name,
		"category": item.Category,
		"price":    item.Price.String(),
		"status":   string(item.Status),
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return model.NewConflictError(model.CodeDuplicateCode,
				fmt.Sprintf("item code %q already exists", item.Code))
		}
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

// GetItem retrieves a catalog item, returning (nil, nil) when it does not exist
func (r *SnackRepository) GetItem(ctx context.Context, id string) (*model.SnackItem, error) {
	query := `SELECT * FROM type::thing('snack_item', $id)`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"id": id})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return parseRecord[model.SnackItem](result)
}

// GetItemByCode retrieves a catalog item by its unique code
func (r *SnackRepository) GetItemByCode(ctx context.Context, code string) (*model.SnackItem, error) {
	query := `SELECT * FROM snack_item WHERE code = $code`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"code": code})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get item by code: %w", err)
	}
	return parseRecord[model.SnackItem](result)
}

// ListItems retrieves catalog items, optionally filtered by category
func (r *SnackRepository) ListItems(ctx context.Context, category *string) ([]*model.SnackItem, error) {
	query := `SELECT * FROM snack_item ORDER BY category, name ASC`
	vars := map[string]interface{}{}
	if category != nil {
		query = `SELECT * FROM snack_item WHERE category = $category ORDER BY name ASC`
		vars["category"] = *category
	}
	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return parseRecords[model.SnackItem](result)
}

// UpdateItem applies field updates and returns the updated item
func (r *SnackRepository) UpdateItem(ctx context.Context, id string, updates map[string]interface{}) (*model.SnackItem, error) {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)

	query := fmt.Sprintf("UPDATE type::thing('snack_item', $id) SET %s", setClause(updates))
	updates["id"] = id

	if err := r.db.Execute(ctx, query, updates); err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}
	return r.GetItem(ctx, id)
}

// CreateOrder persists a new order with its captured lines
func (r *SnackRepository) CreateOrder(ctx context.Context, order *model.SnackOrder) error {
	lines := make([]map[string]interface{}, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, map[string]interface{}{
			"item_id":    line.ItemID,
			"code":       line.Code,
			"quantity":   line.Quantity,
			"unit_price": line.UnitPrice.String(),
			"line_total": line.LineTotal.String(),
		})
	}

	query := `
		CREATE type::thing('snack_order', $id) CONTENT {
			guest_id: $guest_id,
			location: $location,
			lines: $lines,
			total: $total,
			status: $status,
			created_at: time::now(),
			updated_at: time::now()
		}
	`
	_, err := r.db.Query(ctx, query, map[string]interface{}{
		"id":       order.ID,
		"guest_id": order.GuestID,
		"location": order.Location,
		"lines":    lines,
		"total":    order.Total.String(),
		"status":   string(order.Status),
	})
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// GetOrder retrieves an order, returning (nil, nil) when it does not exist
func (r *SnackRepository) GetOrder(ctx context.Context, id string) (*model.SnackOrder, error) {
	query := `SELECT * FROM type::thing('snack_order', $id)`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"id": id})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return parseRecord[model.SnackOrder](result)
}

// ListOrdersByGuest retrieves a guest's orders, newest first
func (r *SnackRepository) ListOrdersByGuest(ctx context.Context, guestID string) ([]*model.SnackOrder, error) {
	query := `
		SELECT * FROM snack_order
		WHERE guest_id = $guest_id
		ORDER BY created_at DESC
	`
	result, err := r.db.Query(ctx, query, map[string]interface{}{"guest_id": guestID})
	if err != nil {
		return nil, fmt.Errorf("failed to list guest orders: %w", err)
	}
	return parseRecords[model.SnackOrder](result)
}

// ListOrdersBetween retrieves orders created within the inclusive date window
func (r *SnackRepository) ListOrdersBetween(ctx context.Context, startDate, endDate string) ([]*model.SnackOrder, error) {
	query := `
		SELECT * FROM snack_order
		WHERE created_at >= type::datetime($start) AND created_at < type::datetime($end)
		ORDER BY created_at ASC
	`
	result, err := r.db.Query(ctx, query, map[string]interface{}{
		"start": dateKeyStart(startDate),
		"end":   dateKeyEnd(endDate),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list orders in window: %w", err)
	}
	return parseRecords[model.SnackOrder](result)
}

// UpdateOrder applies field updates and returns the updated order
func (r *SnackRepository) UpdateOrder(ctx context.Context, id string, updates map[string]interface{}) (*model.SnackOrder, error) {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)

	query := fmt.Sprintf("UPDATE type::thing('snack_order', $id) SET %s", setClause(updates))
	updates["id"] = id

	if err := r.db.Execute(ctx, query, updates); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	return r.GetOrder(ctx, id)
}
