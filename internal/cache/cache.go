// Package cache provides a TTL cache for computed analysis reports, keyed by
// symbol and period. The in-memory backend is the default; a Redis backend
// is used when the deployment shares reports across replicas.
package cache

import (
	"context"
	"fmt"

	"MarketLens/internal/model"
)

// ReportKey identifies one cached report.
type ReportKey struct {
	Symbol string
	Period model.Period
}

func (k ReportKey) String() string {
	return fmt.Sprintf("report:%s:%s", k.Symbol, k.Period)
}

// Cache stores analysis reports with a TTL.
type Cache interface {
	Get(ctx context.Context, key ReportKey) (*model.Report, bool)
	Set(ctx context.Context, key ReportKey, report *model.Report)
}
