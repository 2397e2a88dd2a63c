package domain

// SeriesPoint is one daily close observation. Date is a trading-day
// identifier in YYYY-MM-DD form.
type SeriesPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// Series is a chronologically ascending, date-deduplicated run of daily
// closes.
type Series []SeriesPoint

func (s Series) Values() []float64 {
	values := make([]float64, len(s))
	for i, p := range s {
		values[i] = p.Value
	}
	return values
}
