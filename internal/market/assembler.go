package market

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"github.com/linyc/twmonitor/internal/market/yahoo"
	"github.com/linyc/twmonitor/pkg/logger"
)

// QuoteSource is the upstream a snapshot is assembled from.
type QuoteSource interface {
	FetchDailyHistory(ctx context.Context, symbol string) (yahoo.History, error)
	FetchIntradayQuote(ctx context.Context, symbol string) (yahoo.Quote, error)
}

// Assembler fans out quote fetches across the watchlist and joins the
// results. Instrument failures are isolated: a failed instrument is
// dropped with a logged cause and never fails the join.
type Assembler struct {
	source  QuoteSource
	logger  *logger.Logger
	limiter *rate.Limiter
}

// Yahoo tolerates a handful of requests per second per client.
const fetchesPerSecond = 4

// NewAssembler creates an assembler over the given quote source.
func NewAssembler(source QuoteSource, log *logger.Logger) *Assembler {
	return &Assembler{
		source:  source,
		logger:  log.WithField("module", "assembler"),
		limiter: rate.NewLimiter(rate.Limit(fetchesPerSecond), fetchesPerSecond),
	}
}

// FetchAll assembles snapshots for all instruments concurrently.
// The returned slice contains only successfully assembled snapshots and
// may be empty; fewer snapshots than instruments is a normal outcome.
func (a *Assembler) FetchAll(ctx context.Context, instruments []Instrument) []Snapshot {
	resultCh := make(chan Snapshot, len(instruments))

	var wg sync.WaitGroup
	for _, inst := range instruments {
		wg.Add(1)
		go func(inst Instrument) {
			defer wg.Done()

			snap, err := a.assemble(ctx, inst)
			if err != nil {
				a.logger.WithFields(map[string]interface{}{
					"symbol": inst.Symbol,
					"error":  err.Error(),
				}).Warn("Dropping instrument from snapshot set")
				return
			}
			resultCh <- snap
		}(inst)
	}

	wg.Wait()
	close(resultCh)

	snapshots := make([]Snapshot, 0, len(instruments))
	for snap := range resultCh {
		snapshots = append(snapshots, snap)
	}

	a.logger.WithFields(map[string]interface{}{
		"requested": len(instruments),
		"assembled": len(snapshots),
	}).Debug("Snapshot assembly completed")

	return snapshots
}

// assemble fetches the history and the intraday quote for one instrument
// in parallel and combines them. Either fetch failing fails the whole
// instrument.
func (a *Assembler) assemble(ctx context.Context, inst Instrument) (Snapshot, error) {
	var (
		history    yahoo.History
		quote      yahoo.Quote
		histErr    error
		quoteErr   error
		fetchGroup sync.WaitGroup
	)

	fetchGroup.Add(2)
	go func() {
		defer fetchGroup.Done()
		if histErr = a.limiter.Wait(ctx); histErr != nil {
			return
		}
		history, histErr = a.source.FetchDailyHistory(ctx, inst.Symbol)
	}()
	go func() {
		defer fetchGroup.Done()
		if quoteErr = a.limiter.Wait(ctx); quoteErr != nil {
			return
		}
		quote, quoteErr = a.source.FetchIntradayQuote(ctx, inst.Symbol)
	}()
	fetchGroup.Wait()

	if histErr != nil {
		return Snapshot{}, histErr
	}
	if quoteErr != nil {
		return Snapshot{}, quoteErr
	}

	change := quote.Price - history.PrevClose
	var changePercent float64
	if history.PrevClose != 0 {
		changePercent = change / history.PrevClose * 100
	}

	return Snapshot{
		Symbol:        inst.Symbol,
		Name:          inst.Name,
		Kind:          inst.Kind,
		Price:         quote.Price,
		Open:          quote.Open,
		Change:        change,
		ChangePercent: changePercent,
		History:       history.Closes,
	}, nil
}
