package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/quote"
)

// PriceBar is one daily bar from the equity quote feed. Timestamp is the
// feed's stamp for the bar; intraday stamps mean the close is not final.
type PriceBar struct {
	Timestamp time.Time
	Close     float64
}

type QuoteRepository interface {
	// DailyBars returns daily close bars for symbol within [start, end).
	DailyBars(ctx context.Context, symbol string, start, end time.Time) ([]PriceBar, error)
	// LatestQuote returns the current live price for symbol: the regular,
	// post-market or pre-market price, or bid/ask, first available.
	LatestQuote(ctx context.Context, symbol string) (float64, error)
}

type yahooQuoteRepositoryHandler struct{}

func NewYahooQuoteRepository() QuoteRepository {
	return yahooQuoteRepositoryHandler{}
}

func (h yahooQuoteRepositoryHandler) DailyBars(ctx context.Context, symbol string, start, end time.Time) ([]PriceBar, error) {
	params := &chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	}
	iter := chart.Get(params)

	bars := []PriceBar{}
	for iter.Next() {
		bars = append(bars, PriceBar{
			Timestamp: time.Unix(int64(iter.Bar().Timestamp), 0).UTC(),
			Close:     iter.Bar().Close.InexactFloat64(),
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to get daily bars for %s: %w", symbol, err)
	}

	return bars, nil
}

func (h yahooQuoteRepositoryHandler) LatestQuote(ctx context.Context, symbol string) (float64, error) {
	q, err := quote.Get(symbol)
	if err != nil {
		return 0, fmt.Errorf("failed to get quote for %s: %w", symbol, err)
	}
	if q == nil {
		return 0, fmt.Errorf("no quote returned for %s", symbol)
	}

	for _, price := range []float64{
		q.RegularMarketPrice,
		q.PostMarketPrice,
		q.PreMarketPrice,
		q.Bid,
		q.Ask,
	} {
		if price != 0 {
			return price, nil
		}
	}

	return 0, fmt.Errorf("no realtime price available for %s", symbol)
}
