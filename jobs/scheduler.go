package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/adamspd/StudyNotes/models"
	"github.com/adamspd/StudyNotes/utils"
)

// Refresher is the cached sheet source refreshed on schedule.
type Refresher interface {
	Reload(ctx context.Context) (*models.Table, error)
}

// Scheduler reloads the sheet on a cron schedule so the next visitor does
// not pay for the fetch.
type Scheduler struct {
	cron    *cron.Cron
	sheet   Refresher
	timeout time.Duration
}

func NewScheduler(schedule string, sheet Refresher) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.New(cron.WithLogger(cronLogger{})),
		sheet:   sheet,
		timeout: time.Minute,
	}
	if _, err := s.cron.AddFunc(schedule, s.Refresh); err != nil {
		return nil, fmt.Errorf("invalid REFRESH_SCHEDULE %q: %w", schedule, err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	utils.LogStartup("Starting sheet refresh schedule")
	s.cron.Start()
}

// Stop waits for a running refresh to finish.
func (s *Scheduler) Stop() {
	utils.LogShutdown("Stopping sheet refresh schedule...")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) Refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	table, err := s.sheet.Reload(ctx)
	if err != nil {
		utils.LogError("Scheduled sheet refresh failed: %v", err)
		return
	}
	utils.LogSheet("Scheduled refresh loaded %d rows", len(table.Rows))
}

type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	utils.LogDebug("cron: %s %v", msg, keysAndValues)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	utils.LogError("cron: %s: %v %v", msg, err, keysAndValues)
}
