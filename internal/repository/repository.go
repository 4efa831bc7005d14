package repository

import (
	"context"

	"github.com/yukikurage/task-tracker/internal/models"
)

// TaskPersister stores the whole task collection as one document.
// Save replaces everything previously stored.
type TaskPersister interface {
	// Load returns the stored collection in insertion order
	Load(ctx context.Context) ([]models.Task, error)

	// Save overwrites the stored collection
	Save(ctx context.Context, tasks []models.Task) error
}

// SequenceStore keeps the highest identifier number issued per category so
// numbers freed by deletion stay retired across restarts.
type SequenceStore interface {
	LoadSequences(ctx context.Context) (map[models.TaskCategory]int, error)
	SaveSequences(ctx context.Context, sequences map[models.TaskCategory]int) error
}

// normalizeLoaded fills in categories for records written before the
// category field existed and renumbers the insertion sequence.
func normalizeLoaded(tasks []models.Task) []models.Task {
	for i := range tasks {
		if !tasks[i].Category.Valid() {
			if category, ok := models.CategoryFromTaskID(tasks[i].TaskID); ok {
				tasks[i].Category = category
			}
		}
		tasks[i].Seq = uint64(i + 1)
	}
	return tasks
}
