package dto

import (
	"net/url"

	"github.com/yukikurage/task-tracker/internal/models"
)

// DocumentLinkDTO is the documentation cell of a functional row.
// Both fields are empty when the task has no document.
type DocumentLinkDTO struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// FunctionalRowDTO is one row of the functional table
type FunctionalRowDTO struct {
	TaskID             string          `json:"taskId"`
	Project            string          `json:"project"`
	TaskName           string          `json:"taskName"`
	TaskDescription    string          `json:"taskDescription"`
	Documentation      DocumentLinkDTO `json:"documentation"`
	ResponsiblePerson  string          `json:"responsiblePerson"`
	InternalDeadline   string          `json:"internalDeadline"`
	UserDeadline       string          `json:"userDeadline"`
	Status             string          `json:"status"`
	ChangingStatusDate string          `json:"changingStatusDate"`
}

// TechnicalRowDTO is one row of the technical table
type TechnicalRowDTO struct {
	TaskID             string `json:"taskId"`
	FunctionalTaskID   string `json:"functionalTaskId"`
	ResponsiblePerson  string `json:"responsiblePerson"`
	EstimateDeadline   string `json:"estimateDeadline"`
	Status             string `json:"status"`
	ChangingStatusDate string `json:"changingStatusDate"`
}

// TaskTablesDTO holds both tables and the options for linking a
// technical task to its functional parent
type TaskTablesDTO struct {
	Functional        []FunctionalRowDTO `json:"functional"`
	Technical         []TechnicalRowDTO  `json:"technical"`
	FunctionalTaskIDs []string           `json:"functionalTaskIds"`
}

// Conversion functions

// DownloadURL returns the relative download path for a stored document key
func DownloadURL(key string) string {
	return "/download/" + url.PathEscape(key)
}

// ToDocumentLinkDTO converts a task's document reference to a table cell
func ToDocumentLinkDTO(task models.Task) DocumentLinkDTO {
	doc := task.Document()
	if doc == nil {
		return DocumentLinkDTO{}
	}
	return DocumentLinkDTO{
		Name: doc.Name,
		URL:  DownloadURL(doc.Key),
	}
}

// ToFunctionalRowDTO converts a task to a functional table row
func ToFunctionalRowDTO(task models.Task) FunctionalRowDTO {
	return FunctionalRowDTO{
		TaskID:             task.TaskID,
		Project:            task.Project,
		TaskName:           task.TaskName,
		TaskDescription:    task.TaskDescription,
		Documentation:      ToDocumentLinkDTO(task),
		ResponsiblePerson:  task.ResponsiblePerson,
		InternalDeadline:   task.InternalDeadline,
		UserDeadline:       task.UserDeadline,
		Status:             task.Status,
		ChangingStatusDate: task.ChangingStatusDate,
	}
}

// ToTechnicalRowDTO converts a task to a technical table row
func ToTechnicalRowDTO(task models.Task) TechnicalRowDTO {
	row := TechnicalRowDTO{
		TaskID:             task.TaskID,
		ResponsiblePerson:  task.ResponsiblePerson,
		Status:             task.Status,
		ChangingStatusDate: task.ChangingStatusDate,
	}
	if task.FunctionalTaskID != nil {
		row.FunctionalTaskID = *task.FunctionalTaskID
	}
	if task.EstimateDeadline != nil {
		row.EstimateDeadline = *task.EstimateDeadline
	}
	return row
}

// ToTaskTables partitions tasks by identifier prefix. Tasks whose identifier
// carries neither prefix appear in no table.
func ToTaskTables(tasks []models.Task) TaskTablesDTO {
	tables := TaskTablesDTO{
		Functional:        []FunctionalRowDTO{},
		Technical:         []TechnicalRowDTO{},
		FunctionalTaskIDs: []string{},
	}

	for _, task := range tasks {
		category, ok := models.CategoryFromTaskID(task.TaskID)
		if !ok {
			continue
		}
		switch category {
		case models.TaskCategoryFunctional:
			tables.Functional = append(tables.Functional, ToFunctionalRowDTO(task))
			tables.FunctionalTaskIDs = append(tables.FunctionalTaskIDs, task.TaskID)
		case models.TaskCategoryTechnical:
			tables.Technical = append(tables.Technical, ToTechnicalRowDTO(task))
		}
	}

	return tables
}
