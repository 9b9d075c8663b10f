package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/altamira-consulting/content-engine/app/content"
)

type ReloadContentTask struct {
	Task
	store *content.Store
}

func NewReloadContentTask(store *content.Store) *ReloadContentTask {
	return &ReloadContentTask{
		Task:  NewTask(TaskTypeReloadContent),
		store: store,
	}
}

func (t *ReloadContentTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := t.store.Reload(); err != nil {
		return fmt.Errorf("failed to reload content: %w", err)
	}

	posts, episodes := t.store.Counts()
	slog.Info("Content reloaded", "posts", posts, "episodes", episodes, "duration", t.GetDuration().String())

	return nil
}
