package core

// BucketStat is an aggregate over one store or category.
type BucketStat struct {
	Count int   `json:"count"`
	Total Money `json:"total"`
}

// ExtremeStat is the largest or smallest expense with its store attribution.
type ExtremeStat struct {
	Amount Money  `json:"amount"`
	Store  string `json:"store"`
}

// Stats summarizes a set of expenses for the dashboard. StoreStats is
// aggregated per expense; CategoryStats iterates every line item of every
// expense, which is a finer granularity.
type Stats struct {
	Total         Money                 `json:"total"`
	Count         int                   `json:"count"`
	Max           ExtremeStat           `json:"max"`
	Min           ExtremeStat           `json:"min"`
	AvgPerExpense float64               `json:"avgPerExpense"`
	StoreStats    map[string]BucketStat `json:"storeStats"`
	CategoryStats map[string]BucketStat `json:"categoryStats"`
}

// ComputeStats derives summary statistics over the given expenses. An empty
// input yields the all-zero Stats with empty (non-nil) breakdowns. Ties for
// max and min go to the earlier entry in input order.
func ComputeStats(expenses []Expense) Stats {
	stats := Stats{
		StoreStats:    make(map[string]BucketStat),
		CategoryStats: make(map[string]BucketStat),
	}
	if len(expenses) == 0 {
		return stats
	}

	var totalCents int64
	max := ExtremeStat{Amount: expenses[0].Total, Store: expenses[0].Store}
	min := max
	for i, e := range expenses {
		totalCents += e.Total.Cents
		if i > 0 {
			if e.Total.Cents > max.Amount.Cents {
				max = ExtremeStat{Amount: e.Total, Store: e.Store}
			}
			if e.Total.Cents < min.Amount.Cents {
				min = ExtremeStat{Amount: e.Total, Store: e.Store}
			}
		}

		ss := stats.StoreStats[e.Store]
		ss.Count++
		ss.Total.Cents += e.Total.Cents
		stats.StoreStats[e.Store] = ss

		for _, p := range e.Products {
			cat := p.Category
			if cat == "" {
				cat = DefaultCategory
			}
			cs := stats.CategoryStats[cat]
			cs.Count++
			cs.Total.Cents += p.Price.Cents
			stats.CategoryStats[cat] = cs
		}
	}

	stats.Total = Money{Cents: totalCents}
	stats.Count = len(expenses)
	stats.Max = max
	stats.Min = min
	stats.AvgPerExpense = float64(totalCents) / float64(len(expenses)) / 100.0
	return stats
}
