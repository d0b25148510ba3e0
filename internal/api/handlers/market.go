package handlers

import (
	"context"
	"net/http"

	"github.com/linyc/twmonitor/internal/indicator"
	"github.com/linyc/twmonitor/internal/market"
	"github.com/linyc/twmonitor/pkg/config"
	"github.com/linyc/twmonitor/pkg/logger"
)

// MarketHandler serves assembled snapshots to the dashboard.
type MarketHandler struct {
	source    monitorSource
	watchlist *config.Watchlist
	logger    *logger.Logger
}

type monitorSource interface {
	FetchAll(ctx context.Context, instruments []market.Instrument) []market.Snapshot
}

// NewMarketHandler creates the dashboard data handler.
func NewMarketHandler(source monitorSource, watchlist *config.Watchlist, log *logger.Logger) *MarketHandler {
	return &MarketHandler{
		source:    source,
		watchlist: watchlist,
		logger:    log.WithField("handler", "market"),
	}
}

// snapshotView is a snapshot enriched with derived indicators.
type snapshotView struct {
	market.Snapshot
	RSI  float64 `json:"rsi"`
	MA20 float64 `json:"ma20"`
	Bias float64 `json:"bias"`
}

// GetSnapshots assembles and returns the current snapshot set with
// indicators. GET /api/market/snapshots.
func (h *MarketHandler) GetSnapshots(w http.ResponseWriter, r *http.Request) {
	snapshots := h.source.FetchAll(r.Context(), market.Instruments(h.watchlist))

	views := make([]snapshotView, 0, len(snapshots))
	for _, snap := range snapshots {
		view := snapshotView{Snapshot: snap}

		if snap.Price > 0 && len(snap.History) > 0 {
			series := make([]float64, 0, len(snap.History)+1)
			series = append(series, snap.History...)
			series = append(series, snap.Price)

			view.RSI = indicator.RSI14(series)
			view.MA20 = indicator.SMA(snap.History, 20)
			view.Bias = indicator.Bias(snap.Price, view.MA20)
		}

		views = append(views, view)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"snapshots": views,
	})
}
