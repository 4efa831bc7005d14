package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yukikurage/task-tracker/internal/models"
)

func strPtr(s string) *string { return &s }

func TestToTaskTables_PartitionsByPrefix(t *testing.T) {
	tasks := []models.Task{
		{TaskID: "FT01", Project: "Billing"},
		{TaskID: "TT01", FunctionalTaskID: strPtr("FT01"), EstimateDeadline: strPtr("2024-06-01")},
		{TaskID: "FT02", Project: "Reports"},
		{TaskID: "T1700000000000"},
	}

	tables := ToTaskTables(tasks)

	assert.Len(t, tables.Functional, 2)
	assert.Len(t, tables.Technical, 1)
	assert.Equal(t, []string{"FT01", "FT02"}, tables.FunctionalTaskIDs)
	assert.Equal(t, "FT01", tables.Technical[0].FunctionalTaskID)
	assert.Equal(t, "2024-06-01", tables.Technical[0].EstimateDeadline)
}

func TestToTaskTables_EmptyInputGivesEmptyTables(t *testing.T) {
	tables := ToTaskTables(nil)

	assert.NotNil(t, tables.Functional)
	assert.NotNil(t, tables.Technical)
	assert.NotNil(t, tables.FunctionalTaskIDs)
}

func TestToFunctionalRowDTO_DocumentCell(t *testing.T) {
	withoutDoc := ToFunctionalRowDTO(models.Task{TaskID: "FT01"})
	assert.Equal(t, DocumentLinkDTO{}, withoutDoc.Documentation)

	task := models.Task{TaskID: "FT02"}
	task.AttachDocument(&models.TaskDocument{Key: "abc_design v2.pdf", Name: "design v2.pdf"})
	withDoc := ToFunctionalRowDTO(task)
	assert.Equal(t, "design v2.pdf", withDoc.Documentation.Name)
	assert.Equal(t, "/download/abc_design%20v2.pdf", withDoc.Documentation.URL)
}
