package jobs

import (
	"context"
	"sync"

	"github.com/adamspd/StudyNotes/utils"
)

// InlineRunner runs exports in goroutines of this process when no Redis
// queue is configured.
type InlineRunner struct {
	exporter *Exporter
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

func NewInlineRunner(exporter *Exporter) *InlineRunner {
	ctx, cancel := context.WithCancel(context.Background())
	return &InlineRunner{exporter: exporter, ctx: ctx, cancel: cancel}
}

func (r *InlineRunner) EnqueueExport(exportID string) error {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		if err := r.exporter.Run(r.ctx, exportID); err != nil {
			utils.LogError("Inline export %s failed: %v", exportID, err)
		}
	}()
	utils.LogJob("Started inline export %s", exportID)
	return nil
}

// Wait blocks until every started export has finished.
func (r *InlineRunner) Wait() {
	r.wg.Wait()
}

// Stop cancels running exports and waits for them.
func (r *InlineRunner) Stop() {
	r.cancel()
	r.wg.Wait()
}
