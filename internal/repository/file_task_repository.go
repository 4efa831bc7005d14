package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yukikurage/task-tracker/internal/models"
)

// FileTaskPersister keeps the task collection in a single JSON file
type FileTaskPersister struct {
	path string
}

// NewFileTaskPersister creates a persister backed by the file at path
func NewFileTaskPersister(path string) *FileTaskPersister {
	return &FileTaskPersister{path: path}
}

func (p *FileTaskPersister) Path() string {
	return p.path
}

// SequencesPath is the file next to the task file holding issued identifier numbers
func (p *FileTaskPersister) SequencesPath() string {
	return strings.TrimSuffix(p.path, filepath.Ext(p.path)) + ".sequences.json"
}

// Load reads the collection; a missing file is an empty collection
func (p *FileTaskPersister) Load(ctx context.Context) ([]models.Task, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []models.Task{}, nil
		}
		return nil, fmt.Errorf("read tasks file: %w", err)
	}
	if len(data) == 0 {
		return []models.Task{}, nil
	}

	var tasks []models.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("parse tasks file %s: %w", p.path, err)
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return normalizeLoaded(tasks), nil
}

// Save writes the collection atomically
func (p *FileTaskPersister) Save(ctx context.Context, tasks []models.Task) error {
	if tasks == nil {
		tasks = []models.Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := writeFileAtomic(p.path, data, 0o644); err != nil {
		return fmt.Errorf("write tasks file: %w", err)
	}
	return nil
}

// LoadSequences reads the issued identifier numbers; a missing file yields none
func (p *FileTaskPersister) LoadSequences(ctx context.Context) (map[models.TaskCategory]int, error) {
	sequences := map[models.TaskCategory]int{}
	data, err := os.ReadFile(p.SequencesPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return sequences, nil
		}
		return nil, fmt.Errorf("read sequences file: %w", err)
	}
	if len(data) == 0 {
		return sequences, nil
	}

	var rows []models.TaskSequence
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parse sequences file %s: %w", p.SequencesPath(), err)
	}
	for _, row := range rows {
		sequences[row.Category] = row.Highest
	}
	return sequences, nil
}

// SaveSequences writes the issued identifier numbers atomically
func (p *FileTaskPersister) SaveSequences(ctx context.Context, sequences map[models.TaskCategory]int) error {
	data, err := json.MarshalIndent(sequenceRows(sequences), "", "  ")
	if err != nil {
		return fmt.Errorf("encode sequences: %w", err)
	}
	if err := writeFileAtomic(p.SequencesPath(), data, 0o644); err != nil {
		return fmt.Errorf("write sequences file: %w", err)
	}
	return nil
}

func sequenceRows(sequences map[models.TaskCategory]int) []models.TaskSequence {
	rows := make([]models.TaskSequence, 0, len(sequences))
	for category, highest := range sequences {
		rows = append(rows, models.TaskSequence{Category: category, Highest: highest})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Category < rows[j].Category })
	return rows
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	return nil
}
