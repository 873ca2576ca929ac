package tasks

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/recipevault/engine/internal/storage"
	"github.com/recipevault/engine/pkg/logger"
	"go.uber.org/zap"
)

// TypeImageCleanup removes an image file that a recipe no longer references.
const TypeImageCleanup = "image:cleanup"

// ImageCleanupPayload is the task payload for image cleanup tasks.
type ImageCleanupPayload struct {
	Path string `json:"path"`
}

// NewImageCleanupTask builds a cleanup task for the given public image path.
func NewImageCleanupTask(path string) (*asynq.Task, error) {
	b, err := json.Marshal(ImageCleanupPayload{Path: path})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeImageCleanup, b), nil
}

// ImageCleanupHandler deletes replaced image files from the store.
type ImageCleanupHandler struct {
	images *storage.ImageStore
}

func NewImageCleanupHandler(images *storage.ImageStore) *ImageCleanupHandler {
	return &ImageCleanupHandler{images: images}
}

func (h *ImageCleanupHandler) HandleImageCleanup(ctx context.Context, t *asynq.Task) error {
	var p ImageCleanupPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		logger.L().Error("invalid image cleanup payload", zap.Error(err))
		return err
	}
	logger.L().Info("removing replaced image", zap.String("path", p.Path))
	return h.images.Remove(p.Path)
}
