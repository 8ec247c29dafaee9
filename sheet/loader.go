package sheet

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/adamspd/StudyNotes/cache"
	"github.com/adamspd/StudyNotes/models"
	"github.com/adamspd/StudyNotes/utils"
)

const tableKey = "table"

// Loader memoizes the parsed sheet for a short time-to-live.
type Loader struct {
	fetcher Fetcher
	format  string
	columns Columns
	tables  *cache.TTL[string, *models.Table]
	group   singleflight.Group
}

func NewLoader(fetcher Fetcher, format string, columns Columns, ttl time.Duration) *Loader {
	return &Loader{
		fetcher: fetcher,
		format:  format,
		columns: columns,
		tables:  cache.New[string, *models.Table](ttl, ttl),
	}
}

// Load returns the cached table or fetches and parses a fresh export.
// The returned table is shared and must not be modified.
func (l *Loader) Load(ctx context.Context) (*models.Table, error) {
	if table, ok := l.tables.Get(tableKey); ok {
		return table, nil
	}

	v, err, _ := l.group.Do(tableKey, func() (interface{}, error) {
		if table, ok := l.tables.Get(tableKey); ok {
			return table, nil
		}
		return l.fetch(ctx)
	})
	if err != nil {
		utils.LogError("Sheet load failed: %v", err)
		return nil, err
	}
	return v.(*models.Table), nil
}

// Reload fetches a fresh export and replaces the cached table only when the
// fetch succeeds. On failure the previous table keeps being served.
func (l *Loader) Reload(ctx context.Context) (*models.Table, error) {
	v, err, _ := l.group.Do(tableKey, func() (interface{}, error) {
		return l.fetch(ctx)
	})
	if err != nil {
		utils.LogError("Sheet reload failed: %v", err)
		return nil, err
	}
	return v.(*models.Table), nil
}

func (l *Loader) fetch(ctx context.Context) (*models.Table, error) {
	start := time.Now()
	data, err := l.fetcher.Fetch(ctx)
	if err != nil {
		return nil, &LoadError{Source: l.fetcher.Source(), Err: err}
	}

	table, err := Parse(data, l.format, l.columns, l.fetcher.Source())
	if err != nil {
		return nil, &LoadError{Source: l.fetcher.Source(), Err: err}
	}

	if len(table.MissingColumns) > 0 {
		utils.LogWarn("Sheet is missing columns: %v", table.MissingColumns)
	}
	utils.LogSheet("Loaded %d rows from %s in %v", len(table.Rows), l.fetcher.Source(), time.Since(start))

	l.tables.Set(tableKey, table)
	return table, nil
}

// Invalidate drops the cached table so the next Load refetches.
func (l *Loader) Invalidate() {
	l.tables.Delete(tableKey)
	utils.LogSheet("Cached sheet invalidated")
}

// Close stops the cache janitor.
func (l *Loader) Close() {
	l.tables.Close()
}
