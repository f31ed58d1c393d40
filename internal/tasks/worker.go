package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Worker processes image tasks
type Worker struct {
	store  ImageStore
	logger *zap.Logger
}

// NewWorker creates a new worker instance
func NewWorker(store ImageStore, logger *zap.Logger) *Worker {
	return &Worker{
		store:  store,
		logger: logger,
	}
}

// Register adds the worker's handlers to the mux
func (w *Worker) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeImageDelete, w.HandleImageDelete)
}

// HandleImageDelete deletes one image from storage.
// A returned error makes asynq retry the task; malformed payloads are not retried.
func (w *Worker) HandleImageDelete(ctx context.Context, t *asynq.Task) error {
	var payload ImageDeletePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal image delete payload: %v: %w", err, asynq.SkipRetry)
	}
	if payload.Filename == "" {
		return fmt.Errorf("image delete payload has no filename: %w", asynq.SkipRetry)
	}

	taskID, _ := asynq.GetTaskID(ctx)
	if err := w.store.Delete(ctx, payload.Filename); err != nil {
		w.logger.Error("failed to delete image",
			zap.Error(err),
			zap.String("task_id", taskID),
			zap.String("filename", payload.Filename),
		)
		return fmt.Errorf("failed to delete image %s: %w", payload.Filename, err)
	}

	w.logger.Info("image deleted",
		zap.String("task_id", taskID),
		zap.String("filename", payload.Filename),
	)
	return nil
}
