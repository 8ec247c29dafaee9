package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/adamspd/StudyNotes/db"
	"github.com/adamspd/StudyNotes/utils"
)

const (
	TypeExportPDF = "export:pdf"
)

// Queue hands export jobs to whatever runs them.
type Queue interface {
	EnqueueExport(exportID string) error
}

type JobManager struct {
	client *asynq.Client
	server *asynq.Server
	mux    *asynq.ServeMux
}

type ExportPayload struct {
	ExportID string `json:"export_id"`
}

func NewJobManager(redisURL string) (*JobManager, error) {
	redisOpt, err := asynq.ParseRedisURI(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}

	client := asynq.NewClient(redisOpt)

	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 2,
		Queues: map[string]int{
			"default": 1,
		},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			utils.LogError("Job failed: type=%s error=%v", task.Type(), err)
		}),
		Logger: &AsynqLogger{},
	})

	return &JobManager{
		client: client,
		server: server,
		mux:    asynq.NewServeMux(),
	}, nil
}

func (jm *JobManager) RegisterHandlers(exporter *Exporter) {
	jm.mux.HandleFunc(TypeExportPDF, jm.handleExportPDF(exporter))
}

// Start runs the worker in the background until Stop.
func (jm *JobManager) Start() error {
	utils.LogStartup("Starting job queue worker...")
	return jm.server.Start(jm.mux)
}

func (jm *JobManager) Stop() {
	utils.LogShutdown("Stopping job queue...")
	jm.server.Stop()
	jm.server.Shutdown()
	jm.client.Close()
}

func (jm *JobManager) EnqueueExport(exportID string) error {
	payloadBytes, err := json.Marshal(ExportPayload{ExportID: exportID})
	if err != nil {
		return fmt.Errorf("failed to marshal export payload: %w", err)
	}

	task := asynq.NewTask(TypeExportPDF, payloadBytes)
	info, err := jm.client.Enqueue(task,
		asynq.Queue("default"),
		asynq.MaxRetry(2),
		asynq.Timeout(3*time.Minute),
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue export task: %w", err)
	}

	utils.LogJob("Queued export job: ID=%s export=%s", info.ID, exportID)
	return nil
}

func (jm *JobManager) handleExportPDF(exporter *Exporter) func(context.Context, *asynq.Task) error {
	return func(ctx context.Context, task *asynq.Task) error {
		var payload ExportPayload
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			return fmt.Errorf("failed to unmarshal export payload: %w: %v", asynq.SkipRetry, err)
		}

		err := exporter.Run(ctx, payload.ExportID)
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("export %s: %w", payload.ExportID, asynq.SkipRetry)
		}
		return err
	}
}

// AsynqLogger routes asynq's logs through the tagged logger
type AsynqLogger struct{}

func (l *AsynqLogger) Debug(args ...interface{}) {
	utils.LogDebug(fmt.Sprint(args...))
}

func (l *AsynqLogger) Info(args ...interface{}) {
	utils.LogInfo(fmt.Sprint(args...))
}

func (l *AsynqLogger) Warn(args ...interface{}) {
	utils.LogWarn(fmt.Sprint(args...))
}

func (l *AsynqLogger) Error(args ...interface{}) {
	utils.LogError(fmt.Sprint(args...))
}

func (l *AsynqLogger) Fatal(args ...interface{}) {
	utils.LogError(fmt.Sprint(args...))
}
