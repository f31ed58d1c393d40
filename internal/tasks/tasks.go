// Package tasks moves image deletions out of the request path onto an asynq queue
package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const (
	// TypeImageDelete is the asynq task type of a storage image deletion
	TypeImageDelete = "image:delete"
	// QueueImages is the queue image deletions are enqueued on
	QueueImages = "images"

	imageDeleteMaxRetry = 10
	imageDeleteTimeout  = 30 * time.Second
)

// ImageDeletePayload is the payload of an image deletion task
type ImageDeletePayload struct {
	Filename string `json:"filename"`
}

// ImageStore deletes stored images
type ImageStore interface {
	Delete(ctx context.Context, filename string) error
}

// Enqueuer is the part of *asynq.Client used to schedule tasks
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// NewImageDeleteTask builds an image deletion task for the given storage filename
func NewImageDeleteTask(filename string) (*asynq.Task, error) {
	payload, err := json.Marshal(ImageDeletePayload{Filename: filename})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal image delete payload: %w", err)
	}
	return asynq.NewTask(TypeImageDelete, payload,
		asynq.Queue(QueueImages),
		asynq.MaxRetry(imageDeleteMaxRetry),
		asynq.Timeout(imageDeleteTimeout),
	), nil
}

// ImageCleaner schedules deletion of images whose rows are already gone.
// When the queue is unavailable the image is deleted inline.
type ImageCleaner struct {
	enqueuer Enqueuer
	store    ImageStore
	logger   *zap.Logger
}

// NewImageCleaner creates an ImageCleaner. A nil enqueuer deletes every image inline.
func NewImageCleaner(enqueuer Enqueuer, store ImageStore, logger *zap.Logger) *ImageCleaner {
	return &ImageCleaner{
		enqueuer: enqueuer,
		store:    store,
		logger:   logger,
	}
}

// Schedule removes the given images from storage eventually. Failures are logged, not returned:
// the database no longer references the images.
func (c *ImageCleaner) Schedule(ctx context.Context, filenames []string) {
	for _, filename := range filenames {
		if c.enqueue(ctx, filename) {
			continue
		}
		if err := c.store.Delete(ctx, filename); err != nil {
			c.logger.Error("failed to delete image from storage",
				zap.Error(err),
				zap.String("filename", filename),
			)
		}
	}
}

func (c *ImageCleaner) enqueue(ctx context.Context, filename string) bool {
	if c.enqueuer == nil {
		return false
	}

	task, err := NewImageDeleteTask(filename)
	if err != nil {
		c.logger.Error("failed to build image delete task", zap.Error(err), zap.String("filename", filename))
		return false
	}

	info, err := c.enqueuer.EnqueueContext(ctx, task)
	if err != nil {
		c.logger.Warn("failed to enqueue image delete task, deleting inline",
			zap.Error(err),
			zap.String("filename", filename),
		)
		return false
	}

	c.logger.Debug("image delete task enqueued",
		zap.String("task_id", info.ID),
		zap.String("filename", filename),
	)
	return true
}
