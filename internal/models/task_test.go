package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFields() TaskFields {
	return TaskFields{
		Project:           "Billing",
		TaskName:          "Invoice export",
		ResponsiblePerson: "Ana",
		Status:            "Open",
	}
}

func TestNewFunctionalTask(t *testing.T) {
	task, err := NewFunctionalTask(validFields())

	require.NoError(t, err)
	assert.Equal(t, TaskCategoryFunctional, task.Category)
	assert.Empty(t, task.TaskID)
	assert.Nil(t, task.FunctionalTaskID)
	assert.Nil(t, task.EstimateDeadline)
	assert.Nil(t, task.Document())
}

func TestNewFunctionalTask_MissingFields(t *testing.T) {
	_, err := NewFunctionalTask(TaskFields{Project: " ", ResponsiblePerson: "Ana"})

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, []string{"project", "taskName", "status"}, validationErr.Missing)
	assert.ErrorIs(t, err, ErrInvalidTask)
}

func TestNewTechnicalTask(t *testing.T) {
	task, err := NewTechnicalTask(TaskFields{ResponsiblePerson: "Bo", Status: "Open"}, TechnicalFields{FunctionalTaskID: "FT01"})

	require.NoError(t, err)
	assert.True(t, task.IsTechnical())
	assert.Equal(t, "FT01", *task.FunctionalTaskID)
	assert.Equal(t, "", *task.EstimateDeadline)
}

func TestNewTechnicalTask_RequiresParent(t *testing.T) {
	_, err := NewTechnicalTask(TaskFields{ResponsiblePerson: "Bo", Status: "Open"}, TechnicalFields{})

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, []string{"functionalTaskId"}, validationErr.Missing)
}

func TestValidate_FunctionalWithTechnicalFields(t *testing.T) {
	task, err := NewFunctionalTask(validFields())
	require.NoError(t, err)
	parent := "FT01"
	task.FunctionalTaskID = &parent

	assert.ErrorIs(t, task.Validate(), ErrInvalidTask)
}

func TestValidate_UnknownCategory(t *testing.T) {
	assert.ErrorIs(t, (&Task{Category: "XX"}).Validate(), ErrInvalidTask)
}

func TestParseTaskCategory(t *testing.T) {
	for raw, want := range map[string]TaskCategory{
		"FT": TaskCategoryFunctional, "functional": TaskCategoryFunctional,
		" tt ": TaskCategoryTechnical, "Technical": TaskCategoryTechnical,
	} {
		got, err := ParseTaskCategory(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	_, err := ParseTaskCategory("ops")
	assert.ErrorIs(t, err, ErrInvalidTask)
}

func TestCategoryFromTaskID(t *testing.T) {
	c, ok := CategoryFromTaskID("TT03")
	assert.True(t, ok)
	assert.Equal(t, TaskCategoryTechnical, c)

	_, ok = CategoryFromTaskID("T1700000000000")
	assert.False(t, ok)
}

func TestAttachDocument(t *testing.T) {
	task, err := NewFunctionalTask(validFields())
	require.NoError(t, err)

	task.AttachDocument(&TaskDocument{Key: "k_spec.pdf", Name: "spec.pdf"})
	assert.Equal(t, &TaskDocument{Key: "k_spec.pdf", Name: "spec.pdf"}, task.Document())

	task.AttachDocument(nil)
	assert.Nil(t, task.Document())
}

func TestTaskJSON_UsesClientFieldNames(t *testing.T) {
	task, err := NewFunctionalTask(validFields())
	require.NoError(t, err)
	task.TaskID = "FT01"

	data, err := json.Marshal(task)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "FT01", raw["taskId"])
	assert.Equal(t, "FT", raw["category"])
	assert.Contains(t, raw, "taskDocumentationKey")
	assert.Nil(t, raw["taskDocumentationKey"])
	assert.NotContains(t, raw, "functionalTaskId")
	assert.NotContains(t, raw, "Seq")
}

func TestGoverningDeadline(t *testing.T) {
	functional := Task{Category: TaskCategoryFunctional, InternalDeadline: "2024-01-01"}
	assert.Equal(t, "2024-01-01", functional.GoverningDeadline())

	estimate := "2024-02-02"
	technical := Task{Category: TaskCategoryTechnical, InternalDeadline: "2024-01-01", EstimateDeadline: &estimate}
	assert.Equal(t, "2024-02-02", technical.GoverningDeadline())
}
