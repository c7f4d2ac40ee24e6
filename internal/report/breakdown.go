package report

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

type BreakdownRow struct {
	Key        string  `json:"key"`
	Value      float64 `json:"value"`
	Quantity   int64   `json:"quantity"`
	Percentage float64 `json:"percentage"`
}

// RankedRow is a breakdown row ordered by rank rather than first occurrence.
type RankedRow = BreakdownRow

const (
	fallbackCategory = "Sem Categoria"
	fallbackPayment  = "Outros"
	topProductsLimit = 10
)

// Aggregate groups items by key and sums value and quantity per group.
// Percentages are shares of the value total, rounded to one decimal; an empty
// input produces an empty slice, never NaN. Rows keep first-occurrence order.
func Aggregate[T any](items []T, keyFn func(T) string, valueFn func(T) float64, quantityFn func(T) int64) []BreakdownRow {
	rows := make([]BreakdownRow, 0)
	index := make(map[string]int)

	total := 0.0
	for _, item := range items {
		key := keyFn(item)
		pos, ok := index[key]
		if !ok {
			pos = len(rows)
			index[key] = pos
			rows = append(rows, BreakdownRow{Key: key})
		}
		rows[pos].Value += valueFn(item)
		rows[pos].Quantity += quantityFn(item)
		total += valueFn(item)
	}

	if total > 0 {
		for i := range rows {
			rows[i].Percentage = roundOneDecimal(rows[i].Value / total * 100)
		}
	}

	return rows
}

// CategoryBreakdown flattens the line items of realized orders and groups
// their revenue by category.
func CategoryBreakdown(orders []Order) []BreakdownRow {
	items := realizedLineItems(orders)
	return Aggregate(items,
		func(item LineItem) string {
			if strings.TrimSpace(item.Category) == "" {
				return fallbackCategory
			}
			return item.Category
		},
		func(item LineItem) float64 { return item.UnitPrice * float64(item.Quantity) },
		func(item LineItem) int64 { return item.Quantity },
	)
}

// PaymentBreakdown groups order totals by normalized payment method, one row
// consumed per order.
func PaymentBreakdown(orders []Order) []BreakdownRow {
	return Aggregate(orders,
		func(order Order) string { return NormalizePaymentMethod(order.PaymentMethod) },
		func(order Order) float64 { return order.Total },
		func(order Order) int64 { return 1 },
	)
}

// PeakHours counts orders per hour-of-day bucket.
func PeakHours(orders []Order) []BreakdownRow {
	return Aggregate(orders,
		func(order Order) string { return fmt.Sprintf("%02d", order.PlacedAt.Hour()) },
		func(order Order) float64 { return 1 },
		func(order Order) int64 { return 1 },
	)
}

// TopProducts ranks line items of realized orders by units sold, revenue as
// tie break, truncated to the ten best sellers.
func TopProducts(orders []Order) []RankedRow {
	items := realizedLineItems(orders)
	rows := Aggregate(items,
		func(item LineItem) string { return item.Name },
		func(item LineItem) float64 { return item.UnitPrice * float64(item.Quantity) },
		func(item LineItem) int64 { return item.Quantity },
	)

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Quantity != rows[j].Quantity {
			return rows[i].Quantity > rows[j].Quantity
		}
		return rows[i].Value > rows[j].Value
	})

	if len(rows) > topProductsLimit {
		rows = rows[:topProductsLimit]
	}
	return rows
}

// NormalizePaymentMethod folds free-text payment names into a fixed table.
// Matching is a case-insensitive substring check; unknown and missing values
// land in "Outros".
func NormalizePaymentMethod(raw string) string {
	method := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(method, "dinheiro"):
		return "Dinheiro"
	case strings.Contains(method, "pix"):
		return "PIX"
	case strings.Contains(method, "credito"):
		return "Cartão Crédito"
	case strings.Contains(method, "debito"):
		return "Cartão Débito"
	default:
		return fallbackPayment
	}
}

func realizedLineItems(orders []Order) []LineItem {
	items := make([]LineItem, 0)
	for _, order := range orders {
		if !order.Realized() {
			continue
		}
		items = append(items, order.Items...)
	}
	return items
}

func roundOneDecimal(value float64) float64 {
	return math.Round(value*10) / 10
}
