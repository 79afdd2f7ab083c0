package service

import (
	"context"
	"sync"

	"parcel-admin/internal/core/logger"
	"parcel-admin/internal/features/reports/domain"

	"go.uber.org/zap"
)

// maxLoggedIssues bounds the issue samples written per report.
const maxLoggedIssues = 20

// collector gathers resolution sources and distinct normalizer issues while a
// report is built.
type collector struct {
	mu      sync.Mutex
	report  string
	sources map[domain.LinkSource]int
	seen    map[domain.Issue]struct{}
	issues  []domain.Issue
}

func newCollector(report string) *collector {
	return &collector{
		report:  report,
		sources: make(map[domain.LinkSource]int),
		seen:    make(map[domain.Issue]struct{}),
	}
}

func (c *collector) source(src domain.LinkSource) {
	c.mu.Lock()
	c.sources[src]++
	c.mu.Unlock()
}

func (c *collector) add(issues ...domain.Issue) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, issue := range issues {
		if _, dup := c.seen[issue]; dup {
			continue
		}
		c.seen[issue] = struct{}{}
		c.issues = append(c.issues, issue)
	}
}

func (c *collector) addPtr(issue *domain.Issue) {
	if issue != nil {
		c.add(*issue)
	}
}

func (c *collector) summary(rows int) domain.Diagnostics {
	c.mu.Lock()
	defer c.mu.Unlock()
	sources := make(map[domain.LinkSource]int, len(c.sources))
	for k, v := range c.sources {
		sources[k] = v
	}
	return domain.Diagnostics{
		Report:  c.report,
		Rows:    rows,
		Sources: sources,
		Issues:  append([]domain.Issue(nil), c.issues...),
	}
}

// LogDiagnostics writes report diagnostics to the structured log.
type LogDiagnostics struct{}

// ReportGenerated implements ports.DiagnosticsHook.
func (LogDiagnostics) ReportGenerated(_ context.Context, d domain.Diagnostics) {
	log := logger.Named("reports.diagnostics")

	fields := []zap.Field{
		zap.String("report", d.Report),
		zap.Int("rows", d.Rows),
		zap.Int("issues", len(d.Issues)),
	}
	for src, n := range d.Sources {
		fields = append(fields, zap.Int("source_"+string(src), n))
	}
	log.Debug("Resolution summary", fields...)

	if len(d.Issues) == 0 {
		return
	}
	samples := d.Issues
	if len(samples) > maxLoggedIssues {
		samples = samples[:maxLoggedIssues]
	}
	names := make([]string, len(samples))
	for i, issue := range samples {
		names[i] = issue.String()
	}
	log.Warn("Malformed monetary fields read as zero",
		zap.String("report", d.Report),
		zap.Int("distinct", len(d.Issues)),
		zap.Strings("samples", names),
	)
}

type nopHook struct{}

func (nopHook) ReportGenerated(context.Context, domain.Diagnostics) {}
