package repository

import (
	"context"

	"github.com/yukikurage/task-tracker/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskPersister is a GORM implementation of TaskPersister
type GormTaskPersister struct {
	db *gorm.DB
}

// NewGormTaskPersister creates a new TaskPersister on top of db
func NewGormTaskPersister(db *gorm.DB) *GormTaskPersister {
	return &GormTaskPersister{db: db}
}

// Load retrieves every task ordered by insertion sequence
func (p *GormTaskPersister) Load(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := p.db.WithContext(ctx).Order("seq ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return normalizeLoaded(tasks), nil
}

// Save replaces all rows with the given collection in one transaction
func (p *GormTaskPersister) Save(ctx context.Context, tasks []models.Task) error {
	rows := make([]models.Task, len(tasks))
	for i, task := range tasks {
		task.Seq = uint64(i + 1)
		rows[i] = task
	}

	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}

// LoadSequences reads the issued identifier numbers
func (p *GormTaskPersister) LoadSequences(ctx context.Context) (map[models.TaskCategory]int, error) {
	var rows []models.TaskSequence
	if err := p.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	sequences := make(map[models.TaskCategory]int, len(rows))
	for _, row := range rows {
		sequences[row.Category] = row.Highest
	}
	return sequences, nil
}

// SaveSequences upserts one row per category
func (p *GormTaskPersister) SaveSequences(ctx context.Context, sequences map[models.TaskCategory]int) error {
	rows := sequenceRows(sequences)
	if len(rows) == 0 {
		return nil
	}
	return p.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "category"}},
		DoUpdates: clause.AssignmentColumns([]string{"highest"}),
	}).Create(&rows).Error
}
