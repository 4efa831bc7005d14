package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/yukikurage/task-tracker/internal/constants"
	"github.com/yukikurage/task-tracker/internal/models"
	"github.com/yukikurage/task-tracker/internal/repository"
	"github.com/yukikurage/task-tracker/internal/utils"
)

var (
	ErrInvalidTask            = models.ErrInvalidTask
	ErrPersistFailed          = errors.New("failed to persist tasks")
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAINoTasksGenerated     = errors.New("AI did not generate any tasks")
	ErrAINoValidTasks         = errors.New("no valid tasks could be created from AI output")
	ErrTextRequired           = errors.New("text is required")
)

// TaskDrafter turns free text into task drafts
type TaskDrafter interface {
	DraftTasksFromText(ctx context.Context, text string) ([]DraftedTask, error)
}

// TaskService owns the in-memory task collection and mirrors every
// mutation to its persister.
type TaskService struct {
	mu        sync.Mutex
	tasks     []models.Task
	persister repository.TaskPersister
	sequences repository.SequenceStore
	drafter   TaskDrafter

	// highest identifier number issued per category; never lowered
	highest map[models.TaskCategory]int
}

// NewTaskService loads the stored collection and returns a TaskService.
// drafter may be nil.
func NewTaskService(ctx context.Context, persister repository.TaskPersister, drafter TaskDrafter) (*TaskService, error) {
	tasks, err := persister.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	log.Printf("Loaded %d tasks", len(tasks))

	highest := map[models.TaskCategory]int{}
	for _, category := range []models.TaskCategory{models.TaskCategoryFunctional, models.TaskCategoryTechnical} {
		highest[category] = utils.HighestTaskSequence(category, tasks)
	}

	sequences, _ := persister.(repository.SequenceStore)
	if sequences != nil {
		stored, err := sequences.LoadSequences(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load task sequences: %w", err)
		}
		for category, n := range stored {
			highest[category] = max(highest[category], n)
		}
	}

	return &TaskService{
		tasks:     tasks,
		persister: persister,
		sequences: sequences,
		drafter:   drafter,
		highest:   highest,
	}, nil
}

// List returns all tasks in insertion order
func (s *TaskService) List(ctx context.Context) []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]models.Task, len(s.tasks))
	copy(result, s.tasks)
	return result
}

// ListByCategory returns the tasks whose identifier carries the category prefix
func (s *TaskService) ListByCategory(ctx context.Context, category models.TaskCategory) []models.Task {
	return FilterByPrefix(s.List(ctx), category.Prefix())
}

// Create assigns the next identifier to task, appends it and persists the collection
func (s *TaskService) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	if err := task.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	created := *task
	created.TaskID = utils.NextTaskID(created.Category, s.tasks, s.highest[created.Category])
	created.Seq = 1
	if len(s.tasks) > 0 {
		created.Seq = s.tasks[len(s.tasks)-1].Seq + 1
	}
	issued, _ := utils.TaskIDSequence(created.Category.Prefix(), created.TaskID)

	// The issued number is stored before the task itself.
	if s.sequences != nil {
		recorded := make(map[models.TaskCategory]int, len(s.highest)+1)
		for category, n := range s.highest {
			recorded[category] = n
		}
		recorded[created.Category] = issued
		if err := s.sequences.SaveSequences(ctx, recorded); err != nil {
			log.Printf("Failed to persist identifier sequence for %s: %v", created.TaskID, err)
			return nil, fmt.Errorf("%w: %v", ErrPersistFailed, err)
		}
		s.highest[created.Category] = issued
	}

	next := append(s.tasks[:len(s.tasks):len(s.tasks)], created)
	if err := s.persister.Save(ctx, next); err != nil {
		log.Printf("Failed to persist new task %s: %v", created.TaskID, err)
		return nil, fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}
	s.tasks = next
	s.highest[created.Category] = issued

	log.Printf("Task %s created", created.TaskID)
	return &created, nil
}

// DeleteByID removes every task with the given identifier and persists the
// collection. Deleting an unknown identifier is not an error.
func (s *TaskService) DeleteByID(ctx context.Context, taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		if task.TaskID != taskID {
			next = append(next, task)
		}
	}

	if err := s.persister.Save(ctx, next); err != nil {
		log.Printf("Failed to persist deletion of task %s: %v", taskID, err)
		return fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}
	if removed := len(s.tasks) - len(next); removed > 0 {
		log.Printf("Task %s deleted", taskID)
	}
	s.tasks = next
	return nil
}

// FilterByPrefix returns the tasks whose identifier starts with prefix
func FilterByPrefix(tasks []models.Task, prefix string) []models.Task {
	result := make([]models.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.TaskID != "" && strings.HasPrefix(task.TaskID, prefix) {
			result = append(result, task)
		}
	}
	return result
}

// GenerateTasksInput represents input for drafting functional tasks from text
type GenerateTasksInput struct {
	Text              string
	Project           string
	ResponsiblePerson string
	Status            string
}

// GenerateFunctionalTasks drafts tasks from text and creates one functional
// task per usable draft
func (s *TaskService) GenerateFunctionalTasks(ctx context.Context, input GenerateTasksInput) ([]models.Task, error) {
	if s.drafter == nil {
		return nil, ErrAIServiceNotConfigured
	}
	if strings.TrimSpace(input.Text) == "" {
		return nil, ErrTextRequired
	}

	drafts, err := s.drafter.DraftTasksFromText(ctx, input.Text)
	if err != nil {
		return nil, fmt.Errorf("failed to draft tasks: %w", err)
	}
	if len(drafts) == 0 {
		return nil, ErrAINoTasksGenerated
	}
	if len(drafts) > constants.MaxDraftedTasks {
		drafts = drafts[:constants.MaxDraftedTasks]
	}

	pending := make([]*models.Task, 0, len(drafts))
	for _, draft := range drafts {
		project := strings.TrimSpace(draft.Project)
		if project == "" {
			project = input.Project
		}
		task, err := models.NewFunctionalTask(models.TaskFields{
			Project:           project,
			TaskName:          draft.TaskName,
			TaskDescription:   draft.TaskDescription,
			ResponsiblePerson: input.ResponsiblePerson,
			Status:            input.Status,
		})
		if err != nil {
			continue
		}
		pending = append(pending, task)
	}
	if len(pending) == 0 {
		return nil, ErrAINoValidTasks
	}

	created := make([]models.Task, 0, len(pending))
	for _, task := range pending {
		result, err := s.Create(ctx, task)
		if err != nil {
			return created, err
		}
		created = append(created, *result)
	}
	return created, nil
}
