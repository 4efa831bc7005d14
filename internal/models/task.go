package models

import (
	"errors"
	"fmt"
	"strings"
)

type TaskCategory string

const (
	TaskCategoryFunctional TaskCategory = "FT"
	TaskCategoryTechnical  TaskCategory = "TT"
)

var ErrInvalidTask = errors.New("invalid task")

// Prefix returns the identifier prefix for the category
func (c TaskCategory) Prefix() string {
	return string(c)
}

func (c TaskCategory) Valid() bool {
	return c == TaskCategoryFunctional || c == TaskCategoryTechnical
}

// ParseTaskCategory accepts the short prefix or the team name
func ParseTaskCategory(raw string) (TaskCategory, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "ft", "functional":
		return TaskCategoryFunctional, nil
	case "tt", "technical":
		return TaskCategoryTechnical, nil
	default:
		return "", fmt.Errorf("%w: unknown task type %q", ErrInvalidTask, raw)
	}
}

// CategoryFromTaskID infers the category from an identifier prefix
func CategoryFromTaskID(taskID string) (TaskCategory, bool) {
	for _, c := range []TaskCategory{TaskCategoryFunctional, TaskCategoryTechnical} {
		if strings.HasPrefix(taskID, c.Prefix()) {
			return c, true
		}
	}
	return "", false
}

// TaskDocument references an uploaded file
type TaskDocument struct {
	Key  string
	Name string
}

// Task is either a functional or a technical task record.
// Technical-only fields are nil on functional records.
type Task struct {
	Seq                   uint64       `gorm:"primarykey;autoIncrement:false" json:"-"`
	TaskID                string       `gorm:"type:varchar(32);index;not null" json:"taskId"`
	Category              TaskCategory `gorm:"type:varchar(2);not null" json:"category"`
	Project               string       `gorm:"type:varchar(255)" json:"project"`
	TaskName              string       `gorm:"type:varchar(255)" json:"taskName"`
	TaskDescription       string       `gorm:"type:text" json:"taskDescription"`
	TaskDocumentationName *string      `gorm:"type:varchar(512)" json:"taskDocumentationName"`
	TaskDocumentationKey  *string      `gorm:"type:varchar(512)" json:"taskDocumentationKey"`
	ResponsiblePerson     string       `gorm:"type:varchar(255)" json:"responsiblePerson"`
	InternalDeadline      string       `gorm:"type:varchar(32)" json:"internalDeadline"`
	UserDeadline          string       `gorm:"type:varchar(32)" json:"userDeadline"`
	Status                string       `gorm:"type:varchar(64)" json:"status"`
	ChangingStatusDate    string       `gorm:"type:varchar(32)" json:"changingStatusDate"`
	FunctionalTaskID      *string      `gorm:"type:varchar(32)" json:"functionalTaskId,omitempty"`
	EstimateDeadline      *string      `gorm:"type:varchar(32)" json:"estimateDeadline,omitempty"`
}

// TaskFields holds the attributes shared by both categories
type TaskFields struct {
	Project            string
	TaskName           string
	TaskDescription    string
	ResponsiblePerson  string
	InternalDeadline   string
	UserDeadline       string
	Status             string
	ChangingStatusDate string
	Document           *TaskDocument
}

// TechnicalFields holds the attributes only technical tasks carry
type TechnicalFields struct {
	FunctionalTaskID string
	EstimateDeadline string
}

// NewFunctionalTask builds a functional task without an identifier
func NewFunctionalTask(fields TaskFields) (*Task, error) {
	task := newTask(TaskCategoryFunctional, fields)
	if err := task.Validate(); err != nil {
		return nil, err
	}
	return task, nil
}

// NewTechnicalTask builds a technical task without an identifier
func NewTechnicalTask(fields TaskFields, technical TechnicalFields) (*Task, error) {
	task := newTask(TaskCategoryTechnical, fields)
	functionalTaskID := strings.TrimSpace(technical.FunctionalTaskID)
	task.FunctionalTaskID = &functionalTaskID
	estimateDeadline := strings.TrimSpace(technical.EstimateDeadline)
	task.EstimateDeadline = &estimateDeadline
	if err := task.Validate(); err != nil {
		return nil, err
	}
	return task, nil
}

func newTask(category TaskCategory, fields TaskFields) *Task {
	task := &Task{
		Category:           category,
		Project:            strings.TrimSpace(fields.Project),
		TaskName:           strings.TrimSpace(fields.TaskName),
		TaskDescription:    fields.TaskDescription,
		ResponsiblePerson:  strings.TrimSpace(fields.ResponsiblePerson),
		InternalDeadline:   strings.TrimSpace(fields.InternalDeadline),
		UserDeadline:       strings.TrimSpace(fields.UserDeadline),
		Status:             strings.TrimSpace(fields.Status),
		ChangingStatusDate: strings.TrimSpace(fields.ChangingStatusDate),
	}
	task.AttachDocument(fields.Document)
	return task
}

// AttachDocument sets or clears the document reference
func (t *Task) AttachDocument(doc *TaskDocument) {
	if doc == nil {
		t.TaskDocumentationKey = nil
		t.TaskDocumentationName = nil
		return
	}
	key, name := doc.Key, doc.Name
	t.TaskDocumentationKey = &key
	t.TaskDocumentationName = &name
}

// Document returns the attached document, or nil
func (t *Task) Document() *TaskDocument {
	if t.TaskDocumentationKey == nil || *t.TaskDocumentationKey == "" {
		return nil
	}
	doc := &TaskDocument{Key: *t.TaskDocumentationKey, Name: *t.TaskDocumentationKey}
	if t.TaskDocumentationName != nil && *t.TaskDocumentationName != "" {
		doc.Name = *t.TaskDocumentationName
	}
	return doc
}

func (t *Task) IsTechnical() bool {
	return t.Category == TaskCategoryTechnical
}

// Validate checks field presence for the task's category
func (t *Task) Validate() error {
	var missing []string
	require := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}

	switch t.Category {
	case TaskCategoryFunctional:
		require("project", t.Project)
		require("taskName", t.TaskName)
		if t.FunctionalTaskID != nil || t.EstimateDeadline != nil {
			return fmt.Errorf("%w: functional tasks cannot reference a functional task or estimate deadline", ErrInvalidTask)
		}
	case TaskCategoryTechnical:
		functionalTaskID := ""
		if t.FunctionalTaskID != nil {
			functionalTaskID = *t.FunctionalTaskID
		}
		require("functionalTaskId", functionalTaskID)
	default:
		return fmt.Errorf("%w: unknown category %q", ErrInvalidTask, t.Category)
	}
	require("responsiblePerson", t.ResponsiblePerson)
	require("status", t.Status)

	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// ValidationError lists the required fields that were empty
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidTask
}

// GoverningDeadline is the deadline used for overdue checks
func (t *Task) GoverningDeadline() string {
	if t.IsTechnical() {
		if t.EstimateDeadline != nil {
			return *t.EstimateDeadline
		}
		return ""
	}
	return t.InternalDeadline
}

// TaskSequence records the highest identifier number ever issued for a category
type TaskSequence struct {
	Category TaskCategory `gorm:"type:varchar(2);primarykey" json:"category"`
	Highest  int          `gorm:"not null" json:"highest"`
}
