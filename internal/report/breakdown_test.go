package report

import (
	"math"
	"testing"
)

func TestAggregateEmptyInput(t *testing.T) {
	rows := Aggregate(nil,
		func(o Order) string { return "x" },
		func(o Order) float64 { return 1 },
		func(o Order) int64 { return 1 },
	)

	if rows == nil || len(rows) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", rows)
	}
}

func TestAggregatePercentagesSumToHundred(t *testing.T) {
	orders := []Order{
		{Status: StatusDelivered, Total: 33, PaymentMethod: "pix"},
		{Status: StatusDelivered, Total: 33, PaymentMethod: "dinheiro"},
		{Status: StatusDelivered, Total: 34, PaymentMethod: "cartao_credito"},
	}

	rows := PaymentBreakdown(orders)

	sum := 0.0
	for _, row := range rows {
		sum += row.Percentage
	}
	if math.Abs(sum-100) > 0.3 {
		t.Fatalf("expected percentages to sum to 100 within rounding, got %v", sum)
	}
}

func TestAggregateKeepsFirstOccurrenceOrder(t *testing.T) {
	orders := []Order{
		{Total: 10, PaymentMethod: "pix"},
		{Total: 20, PaymentMethod: "dinheiro"},
		{Total: 30, PaymentMethod: "pix"},
	}

	rows := PaymentBreakdown(orders)
	if len(rows) != 2 || rows[0].Key != "PIX" || rows[1].Key != "Dinheiro" {
		t.Fatalf("expected insertion-ordered rows [PIX Dinheiro], got %v", rows)
	}
	if rows[0].Value != 40 || rows[0].Quantity != 2 {
		t.Fatalf("expected PIX row value 40 over 2 orders, got %+v", rows[0])
	}
}

func TestNormalizePaymentMethod(t *testing.T) {
	cases := []struct {
		raw      string
		expected string
	}{
		{raw: "dinheiro", expected: "Dinheiro"},
		{raw: "PIX", expected: "PIX"},
		{raw: "cartao_credito", expected: "Cartão Crédito"},
		{raw: "Cartao Debito", expected: "Cartão Débito"},
		{raw: "xyz", expected: "Outros"},
		{raw: "", expected: "Outros"},
	}

	for _, tc := range cases {
		if got := NormalizePaymentMethod(tc.raw); got != tc.expected {
			t.Fatalf("NormalizePaymentMethod(%q): expected %q, got %q", tc.raw, tc.expected, got)
		}
	}
}

func TestCategoryBreakdownDefaultsMissingCategory(t *testing.T) {
	orders := []Order{
		{
			Status: StatusDelivered,
			Items: []LineItem{
				{Name: "Pizza", Category: "Pizzas", UnitPrice: 10, Quantity: 2},
				{Name: "Água", Category: "", UnitPrice: 3, Quantity: 1},
			},
		},
		{
			// Cancelled orders contribute nothing.
			Status: StatusCancelled,
			Items:  []LineItem{{Name: "Burger", Category: "Lanches", UnitPrice: 8, Quantity: 1}},
		},
	}

	rows := CategoryBreakdown(orders)
	if len(rows) != 2 {
		t.Fatalf("expected 2 categories, got %v", rows)
	}
	if rows[0].Key != "Pizzas" || rows[0].Value != 20 {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[1].Key != "Sem Categoria" || rows[1].Value != 3 {
		t.Fatalf("expected missing category to fall back, got %+v", rows[1])
	}
}

func TestTopProductsRanking(t *testing.T) {
	orders := []Order{{
		Status: StatusDelivered,
		Items: []LineItem{
			{Name: "Pizza", UnitPrice: 10, Quantity: 5},
			{Name: "Burger", UnitPrice: 8, Quantity: 3},
		},
	}}

	rows := TopProducts(orders)
	if len(rows) != 2 {
		t.Fatalf("expected 2 products, got %d", len(rows))
	}
	if rows[0].Key != "Pizza" || rows[0].Value != 50 || rows[0].Quantity != 5 {
		t.Fatalf("unexpected top product: %+v", rows[0])
	}
	if rows[1].Key != "Burger" || rows[1].Value != 24 || rows[1].Quantity != 3 {
		t.Fatalf("unexpected second product: %+v", rows[1])
	}
}

func TestTopProductsTieBreakAndLimit(t *testing.T) {
	items := make([]LineItem, 0, 12)
	for i := 0; i < 12; i++ {
		items = append(items, LineItem{
			Name:      string(rune('A' + i)),
			UnitPrice: float64(i + 1),
			Quantity:  1,
		})
	}
	orders := []Order{{Status: StatusCompleted, Items: items}}

	rows := TopProducts(orders)
	if len(rows) != 10 {
		t.Fatalf("expected top-10 truncation, got %d rows", len(rows))
	}
	// Equal quantities, so revenue decides the order.
	if rows[0].Key != "L" || rows[9].Key != "C" {
		t.Fatalf("expected revenue tie break L..C, got %s..%s", rows[0].Key, rows[9].Key)
	}
}

func TestPeakHoursCountsAllOrders(t *testing.T) {
	orders := []Order{
		orderAt(11, 10, StatusDelivered),
		orderAt(11, 15, StatusCancelled),
		orderAt(19, 20, StatusDelivered),
	}

	rows := PeakHours(orders)
	if len(rows) != 2 {
		t.Fatalf("expected 2 hour buckets, got %v", rows)
	}
	if rows[0].Key != "11" || rows[0].Quantity != 2 {
		t.Fatalf("expected 2 orders at hour 11, got %+v", rows[0])
	}
	if rows[1].Key != "19" || rows[1].Quantity != 1 {
		t.Fatalf("expected 1 order at hour 19, got %+v", rows[1])
	}
}
