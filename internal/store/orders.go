package store

import (
	"context"
	"fmt"
	"time"

	"pratoria-backoffice-service/internal/report"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OrderStore is the Postgres adapter behind the reporting engine. It returns
// every order with placed_at in [start, end) for one store; defensive
// defaults for missing fields are applied here so the engine never sees
// malformed records.
type OrderStore struct {
	db *pgxpool.Pool
}

func NewOrderStore(db *pgxpool.Pool) *OrderStore {
	return &OrderStore{db: db}
}

func (s *OrderStore) FetchOrders(ctx context.Context, storeID int64, start, end time.Time) ([]report.Order, error) {
	rows, err := s.db.Query(ctx, `
		select o.id, o.store_id, o.placed_at, o.status, o.total_amount, o.payment_method,
		       o.customer_name, o.customer_phone
		from orders o
		where o.store_id = $1
		  and o.placed_at >= $2
		  and o.placed_at < $3
		order by o.placed_at asc
	`, storeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	orders := make([]report.Order, 0)
	index := make(map[int64]int)
	orderIDs := make([]int64, 0)

	for rows.Next() {
		var (
			id            int64
			ownerStoreID  int64
			placedAt      time.Time
			status        string
			totalAmount   pgtype.Numeric
			paymentMethod pgtype.Text
			customerName  pgtype.Text
			customerPhone pgtype.Text
		)
		if err := rows.Scan(&id, &ownerStoreID, &placedAt, &status, &totalAmount, &paymentMethod, &customerName, &customerPhone); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}

		index[id] = len(orders)
		orderIDs = append(orderIDs, id)
		orders = append(orders, report.Order{
			ID:            id,
			StoreID:       ownerStoreID,
			PlacedAt:      placedAt,
			Status:        report.OrderStatus(status),
			Total:         numericToFloat64(totalAmount),
			PaymentMethod: textOrEmpty(paymentMethod),
			Customer: report.Customer{
				Name:  textOrEmpty(customerName),
				Phone: textOrEmpty(customerPhone),
			},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	if len(orderIDs) == 0 {
		return orders, nil
	}

	itemRows, err := s.db.Query(ctx, `
		select oi.order_id, oi.name, oi.category, oi.unit_price, oi.quantity
		from order_items oi
		where oi.order_id = any($1)
		order by oi.order_id asc, oi.id asc
	`, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var (
			orderID   int64
			name      string
			category  pgtype.Text
			unitPrice pgtype.Numeric
			quantity  int32
		)
		if err := itemRows.Scan(&orderID, &name, &category, &unitPrice, &quantity); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}

		pos, ok := index[orderID]
		if !ok {
			continue
		}
		orders[pos].Items = append(orders[pos].Items, report.LineItem{
			Name:      name,
			Category:  textOrEmpty(category),
			UnitPrice: numericToFloat64(unitPrice),
			Quantity:  int64(quantity),
		})
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order items: %w", err)
	}

	return orders, nil
}

// ExportPINHash returns the bcrypt hash of the store's report-export PIN, or
// empty when none is configured.
func (s *OrderStore) ExportPINHash(ctx context.Context, storeID int64) (string, error) {
	var hash pgtype.Text
	err := s.db.QueryRow(ctx, `select export_pin from stores where id = $1`, storeID).Scan(&hash)
	if err != nil {
		return "", fmt.Errorf("query export pin: %w", err)
	}
	return textOrEmpty(hash), nil
}

func numericToFloat64(value pgtype.Numeric) float64 {
	if !value.Valid {
		return 0
	}
	f, err := value.Float64Value()
	if err != nil {
		return 0
	}
	return f.Float64
}

func textOrEmpty(value pgtype.Text) string {
	if !value.Valid {
		return ""
	}
	return value.String
}
