package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	gin "github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"MarketLens/internal/analyzer"
	"MarketLens/internal/cache"
	"MarketLens/internal/collector"
	"MarketLens/internal/model"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type snapshotsResponse struct {
	Rows []recorderRow `json:"rows"`
}

// recorderRow is the wire form of one recorded snapshot.
type recorderRow struct {
	Symbol         string  `json:"symbol"`
	Timestamp      string  `json:"timestamp"`
	Price          float64 `json:"price"`
	MA50           float64 `json:"ma50"`
	MA200          float64 `json:"ma200"`
	RSI            float64 `json:"rsi"`
	VWAP           float64 `json:"vwap"`
	GoldenCross    bool    `json:"golden_cross"`
	Overbought     bool    `json:"overbought"`
	Oversold       bool    `json:"oversold"`
	PriceAboveVWAP bool    `json:"price_above_vwap"`
}

// --- Helpers ---

func (s *Server) badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, apiError{Code: "bad_request", Message: msg})
}

func (s *Server) notFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, apiError{Code: "not_found", Message: msg})
}

func (s *Server) upstreamError(c *gin.Context, where string, err error) {
	s.Logger.Error("upstream_error", zap.String("where", where), zap.Error(err))
	c.JSON(http.StatusBadGateway, apiError{Code: "upstream_error", Message: "market data fetch failed"})
}

func parseLimit(v string, def, min, max int) int {
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < min || n > max {
		return def
	}
	return n
}

// --- Handlers ---

func (s *Server) getRoot(c *gin.Context) {
	periods := model.AllPeriods()
	available := make([]string, len(periods))
	for i, p := range periods {
		available[i] = p.String()
	}
	c.JSON(http.StatusOK, gin.H{
		"message":           "MarketLens API is running",
		"version":           Version,
		"available_periods": available,
	})
}

func (s *Server) getStock(c *gin.Context) {
	ticker := strings.ToUpper(strings.TrimSpace(c.Param("ticker")))
	if ticker == "" {
		s.badRequest(c, "ticker is required")
		return
	}

	period := model.DefaultPeriod
	if raw := c.Query("period"); raw != "" {
		p, ok := model.ParsePeriod(raw)
		if !ok {
			s.badRequest(c, "invalid period (use 7d, 1mo, 6mo, 2y, 5y or 10y)")
			return
		}
		period = p
	}

	key := cache.ReportKey{Symbol: ticker, Period: period}
	if report, ok := s.Cache.Get(c.Request.Context(), key); ok {
		s.Metrics.CacheHits.Inc()
		c.JSON(http.StatusOK, report)
		return
	}
	s.Metrics.CacheMisses.Inc()

	start := time.Now()
	series, profile, err := s.Collector.Analyze(c.Request.Context(), ticker, period)
	s.Metrics.FetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.Metrics.FetchesTotal.WithLabelValues(s.Collector.Fetcher.Name(), "error").Inc()
		if errors.Is(err, collector.ErrNoData) {
			s.notFound(c, "no data found for ticker "+ticker)
			return
		}
		s.upstreamError(c, "Analyze", err)
		return
	}
	s.Metrics.FetchesTotal.WithLabelValues(s.Collector.Fetcher.Name(), "ok").Inc()
	s.Metrics.AnalysesTotal.WithLabelValues(period.String()).Inc()

	report := analyzer.BuildReport(series, profile)
	s.Cache.Set(c.Request.Context(), key, report)
	c.JSON(http.StatusOK, report)
}

func (s *Server) getSnapshots(c *gin.Context) {
	ticker := strings.ToUpper(strings.TrimSpace(c.Param("ticker")))
	limit := parseLimit(c.Query("limit"), 50, 1, 500)

	snaps, err := s.Recorder.RecentSnapshots(ticker, limit)
	if err != nil {
		s.Logger.Error("recent_snapshots", zap.String("symbol", ticker), zap.Error(err))
		c.JSON(http.StatusInternalServerError, apiError{Code: "internal_server_error", Message: "internal server error"})
		return
	}

	rows := make([]recorderRow, len(snaps))
	for i, sn := range snaps {
		rows[i] = recorderRow{
			Symbol:         sn.Symbol,
			Timestamp:      sn.Timestamp.Format(time.RFC3339),
			Price:          sn.Price,
			MA50:           sn.MA50,
			MA200:          sn.MA200,
			RSI:            sn.RSI,
			VWAP:           sn.VWAP,
			GoldenCross:    sn.GoldenCross,
			Overbought:     sn.Overbought,
			Oversold:       sn.Oversold,
			PriceAboveVWAP: sn.PriceAboveVWAP,
		}
	}
	c.JSON(http.StatusOK, snapshotsResponse{Rows: rows})
}

// getDebug returns the last 5 bars and the latest calculation sample for
// hand-verifying indicator math.
func (s *Server) getDebug(c *gin.Context) {
	ticker := strings.ToUpper(strings.TrimSpace(c.Param("ticker")))
	series, _, err := s.Collector.Analyze(c.Request.Context(), ticker, model.PeriodMonth)
	if err != nil {
		if errors.Is(err, collector.ErrNoData) {
			s.notFound(c, "no data found for ticker "+ticker)
			return
		}
		s.upstreamError(c, "Analyze", err)
		return
	}

	n := len(series.Bars)
	tail := 5
	if n < tail {
		tail = n
	}
	lastBars := make([]gin.H, tail)
	for i := 0; i < tail; i++ {
		b := series.Bars[n-tail+i]
		lastBars[i] = gin.H{
			"date":   b.Time.Format("2006-01-02"),
			"open":   b.Open,
			"high":   b.High,
			"low":    b.Low,
			"close":  b.Close,
			"volume": b.Volume,
		}
	}

	analysis := analyzer.BuildAnalysis(series)
	c.JSON(http.StatusOK, gin.H{
		"last_5_days": lastBars,
		"calculations_sample": gin.H{
			"close":  series.LatestClose(),
			"50_ma":  analysis.MovingAverages.Latest50MA,
			"200_ma": analysis.MovingAverages.Latest200MA,
			"rsi":    analysis.RSI.CurrentRSI,
			"vwap":   analysis.VWAP.CurrentVWAP,
		},
	})
}
