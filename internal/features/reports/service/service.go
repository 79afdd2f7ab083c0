package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"parcel-admin/internal/core/cache"
	"parcel-admin/internal/core/config"
	"parcel-admin/internal/core/logger"
	"parcel-admin/internal/features/reports/domain"
	"parcel-admin/internal/features/reports/ports"
	"parcel-admin/internal/features/reports/resolver"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ReportService assembles the admin reports. It is safe for concurrent use.
type ReportService struct {
	repo        ports.Repository
	fares       ports.FareConfigReader
	cache       cache.Cache
	diagnostics ports.DiagnosticsHook
	resolver    *resolver.Resolver
	cfg         config.ReportsConfig
	group       singleflight.Group
}

// NewReportService creates a ReportService. A nil cache disables page caching and
// a nil hook discards diagnostics.
func NewReportService(repo ports.Repository, fares ports.FareConfigReader, c cache.Cache, hook ports.DiagnosticsHook, cfg config.ReportsConfig) *ReportService {
	if c == nil {
		c = cache.NoopCache{}
	}
	if hook == nil {
		hook = nopHook{}
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = 100
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &ReportService{
		repo:        repo,
		fares:       fares,
		cache:       c,
		diagnostics: hook,
		resolver:    resolver.Default(),
		cfg:         cfg,
	}
}

// Normalize applies page defaults and caps the limit at the configured maximum.
func (s *ReportService) Normalize(q domain.Query) domain.Query {
	if q.Page < 1 {
		q.Page = domain.DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = domain.DefaultLimit
	}
	if q.Limit > s.cfg.MaxLimit {
		q.Limit = s.cfg.MaxLimit
	}
	return q
}

// ConsolidatedReport returns one row per consignment.
func (s *ReportService) ConsolidatedReport(ctx context.Context, q domain.Query) (*domain.Page[domain.ConsolidatedRow], error) {
	return generate(ctx, s, domain.ReportConsolidated, q, s.buildConsolidated)
}

// SenderReport returns consignments grouped by sender.
func (s *ReportService) SenderReport(ctx context.Context, q domain.Query) (*domain.Page[domain.SenderReportRow], error) {
	return generate(ctx, s, domain.ReportSender, q, s.buildSenders)
}

// TravelerReport returns resolved consignments grouped by traveler.
func (s *ReportService) TravelerReport(ctx context.Context, q domain.Query) (*domain.Page[domain.TravelerReportRow], error) {
	return generate(ctx, s, domain.ReportTraveler, q, s.buildTravelers)
}

// TravelDetailsReport returns one row per trip with request statistics.
func (s *ReportService) TravelDetailsReport(ctx context.Context, q domain.Query) (*domain.Page[domain.TravelDetailsRow], error) {
	return generate(ctx, s, domain.ReportTravelDetail, q, s.buildTravelDetails)
}

// generate serves a page from cache, or builds it once for all identical
// concurrent callers under the report timeout.
func generate[T any](ctx context.Context, s *ReportService, kind string, q domain.Query, build func(context.Context, domain.Query, *collector) (*domain.Page[T], error)) (*domain.Page[T], error) {
	q = s.Normalize(q)
	if err := q.CheckOffset(); err != nil {
		return nil, err
	}
	key := cacheKey(kind, q)
	log := logger.Named("reports").With(zap.String("report", kind))

	if s.cfg.CacheTTL > 0 {
		if data, err := s.cache.Get(ctx, key); err == nil {
			var page domain.Page[T]
			if err := json.Unmarshal(data, &page); err == nil {
				return &page, nil
			}
			log.Warn("Discarding undecodable cached page", zap.String("key", key))
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			log.Warn("Report cache unavailable", zap.Error(err))
		}
	}

	v, err, shared := s.group.Do(key, func() (interface{}, error) {
		// Detached from the caller so one disconnect does not fail every waiter.
		bctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.Timeout)
		defer cancel()

		started := time.Now()
		diag := newCollector(kind)
		page, err := build(bctx, q, diag)
		if err != nil {
			return nil, fmt.Errorf("failed to build %s report: %w", kind, err)
		}

		d := diag.summary(len(page.Data))
		s.diagnostics.ReportGenerated(bctx, d)
		log.Info("Report generated",
			zap.Int("page", q.Page),
			zap.Int("rows", len(page.Data)),
			zap.Int64("total", page.Pagination.TotalRecords),
			zap.Duration("elapsed", time.Since(started)),
		)

		if s.cfg.CacheTTL > 0 {
			if data, err := json.Marshal(page); err == nil {
				if err := s.cache.Set(bctx, key, data, s.cfg.CacheTTL); err != nil {
					log.Warn("Failed to cache report page", zap.Error(err))
				}
			}
		}
		return page, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		log.Debug("Collapsed identical report request", zap.String("key", key))
	}
	return v.(*domain.Page[T]), nil
}

func cacheKey(kind string, q domain.Query) string {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("limit", strconv.Itoa(q.Limit))
	v.Set("search", q.Search)
	if q.RangeKey != "" {
		v.Set("range", q.RangeKey)
		return "report:" + kind + ":" + v.Encode()
	}
	if !q.Range.Start.IsZero() {
		v.Set("from", q.Range.Start.UTC().Format(time.RFC3339Nano))
	}
	if !q.Range.End.IsZero() {
		v.Set("to", q.Range.End.UTC().Format(time.RFC3339Nano))
	}
	return "report:" + kind + ":" + v.Encode()
}

// fareTerms reads the margin in effect; a missing configuration uses the defaults.
func (s *ReportService) fareTerms(ctx context.Context) (domain.FareTerms, error) {
	if s.fares == nil {
		return domain.DefaultFareTerms(), nil
	}
	cfg, err := s.fares.GetConfig(ctx)
	if err != nil {
		return domain.FareTerms{}, fmt.Errorf("failed to read fare config: %w", err)
	}
	if cfg == nil {
		return domain.DefaultFareTerms(), nil
	}
	return domain.FareTerms{
		TE:     decimal.NewFromFloat(cfg.TE),
		Margin: decimal.NewFromFloat(cfg.Margin),
	}, nil
}

func filterOf(q domain.Query) ports.Filter {
	return ports.Filter{Search: q.Search, Range: q.Range}
}

func windowOf(q domain.Query) ports.Window {
	return ports.Window{Skip: q.Skip(), Limit: int64(q.Limit)}
}
