package queue

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/recipevault/engine/internal/queue/tasks"
)

// ImageDisposer schedules removal of an image file that is no longer
// referenced by any recipe.
type ImageDisposer interface {
	Dispose(ctx context.Context, publicPath string) error
}

// AsynqDisposer enqueues cleanup tasks for the background worker.
type AsynqDisposer struct {
	client *asynq.Client
}

func NewAsynqDisposer(client *asynq.Client) *AsynqDisposer {
	return &AsynqDisposer{client: client}
}

func (d *AsynqDisposer) Dispose(ctx context.Context, publicPath string) error {
	t, err := tasks.NewImageCleanupTask(publicPath)
	if err != nil {
		return err
	}
	_, err = d.client.EnqueueContext(ctx, t)
	return err
}
