package report

// Metric carries a current-period value plus its period-over-period variance.
type Metric struct {
	Value    float64 `json:"value"`
	Variance float64 `json:"variance"`
}

type KpiSet struct {
	Revenue          Metric `json:"revenue"`
	Orders           Metric `json:"orders"`
	TicketAverage    Metric `json:"ticketAverage"`
	CancellationRate Metric `json:"cancellationRate"`
	UniqueCustomers  Metric `json:"uniqueCustomers"`

	// Not yet computed: rating and delivery-time feeds are not wired into
	// the order snapshot. Left nil rather than filled with placeholders so
	// the output stays deterministic.
	AverageRating       *Metric `json:"averageRating,omitempty"`
	AverageDeliveryTime *Metric `json:"averageDeliveryTime,omitempty"`
}

type kpiValues struct {
	revenue          float64
	orderCount       float64
	ticketAverage    float64
	cancellationRate float64
	uniqueCustomers  float64
}

// ComputeKPIs aggregates both order sets with identical formulas and emits
// each metric with its variance against the prior period. Empty input yields
// all-zero metrics, not an error.
func ComputeKPIs(current, prior []Order) KpiSet {
	cur := computeKpiValues(current)
	prev := computeKpiValues(prior)

	return KpiSet{
		Revenue:          Metric{Value: cur.revenue, Variance: Growth(cur.revenue, prev.revenue)},
		Orders:           Metric{Value: cur.orderCount, Variance: Growth(cur.orderCount, prev.orderCount)},
		TicketAverage:    Metric{Value: cur.ticketAverage, Variance: Growth(cur.ticketAverage, prev.ticketAverage)},
		CancellationRate: Metric{Value: cur.cancellationRate, Variance: Growth(cur.cancellationRate, prev.cancellationRate)},
		UniqueCustomers:  Metric{Value: cur.uniqueCustomers, Variance: Growth(cur.uniqueCustomers, prev.uniqueCustomers)},
	}
}

func computeKpiValues(orders []Order) kpiValues {
	var values kpiValues

	realizedCount := 0
	cancelledCount := 0
	customers := make(map[string]struct{})

	for _, order := range orders {
		if order.Realized() {
			values.revenue += order.Total
			realizedCount++
		}
		if order.Status == StatusCancelled {
			cancelledCount++
		}

		key := order.Customer.Phone
		if key == "" {
			key = order.Customer.Name
		}
		if key != "" {
			customers[key] = struct{}{}
		}
	}

	values.orderCount = float64(len(orders))
	if realizedCount > 0 {
		values.ticketAverage = values.revenue / float64(realizedCount)
	}
	if len(orders) > 0 {
		values.cancellationRate = float64(cancelledCount) / float64(len(orders)) * 100
	}
	values.uniqueCustomers = float64(len(customers))

	return values
}
