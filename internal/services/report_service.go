package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/yukikurage/task-tracker/internal/constants"
	"github.com/yukikurage/task-tracker/internal/dto"
	"github.com/yukikurage/task-tracker/internal/models"
)

var ErrUnknownFormat = errors.New("unknown export format")

var finishedStatuses = map[string]struct{}{
	"done":      {},
	"completed": {},
	"closed":    {},
}

// ReportService renders exports and overdue reports from the task store
type ReportService struct {
	tasks *TaskService
}

func NewReportService(tasks *TaskService) *ReportService {
	return &ReportService{tasks: tasks}
}

// Export renders every task in the given format (json, csv or pdf)
func (s *ReportService) Export(ctx context.Context, format string) ([]byte, error) {
	all := s.tasks.List(ctx)

	switch strings.ToLower(format) {
	case constants.ExportFormatJSON:
		return json.MarshalIndent(dto.ToTaskTables(all), "", "  ")
	case constants.ExportFormatCSV:
		return exportCSV(all)
	case constants.ExportFormatPDF:
		return exportPDF(dto.ToTaskTables(all))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

func exportCSV(tasks []models.Task) ([]byte, error) {
	var b bytes.Buffer
	w := csv.NewWriter(&b)
	_ = w.Write([]string{
		"taskId", "category", "functionalTaskId", "project", "taskName", "taskDescription",
		"documentation", "responsiblePerson", "internalDeadline", "userDeadline",
		"estimateDeadline", "status", "changingStatusDate",
	})
	for _, t := range tasks {
		doc := ""
		if d := t.Document(); d != nil {
			doc = d.Name
		}
		_ = w.Write([]string{
			t.TaskID, string(t.Category), deref(t.FunctionalTaskID), t.Project, t.TaskName, t.TaskDescription,
			doc, t.ResponsiblePerson, t.InternalDeadline, t.UserDeadline,
			deref(t.EstimateDeadline), t.Status, t.ChangingStatusDate,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func exportPDF(tables dto.TaskTablesDTO) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Task Report")
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 8, fmt.Sprintf("Functional tasks (%d)", len(tables.Functional)))
	pdf.Ln(9)
	pdf.SetFont("Arial", "", 10)
	for _, row := range tables.Functional {
		line := fmt.Sprintf("%s  [%s] %s - %s  owner=%s internal=%s user=%s status=%s",
			row.TaskID, row.Project, row.TaskName, row.TaskDescription,
			row.ResponsiblePerson, row.InternalDeadline, row.UserDeadline, row.Status)
		pdf.MultiCell(0, 6, line, "0", "L", false)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 8, fmt.Sprintf("Technical tasks (%d)", len(tables.Technical)))
	pdf.Ln(9)
	pdf.SetFont("Arial", "", 10)
	for _, row := range tables.Technical {
		line := fmt.Sprintf("%s  parent=%s owner=%s estimate=%s status=%s",
			row.TaskID, row.FunctionalTaskID, row.ResponsiblePerson, row.EstimateDeadline, row.Status)
		pdf.MultiCell(0, 6, line, "0", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// OverdueTasks returns unfinished tasks whose deadline is before now's date.
// Tasks without a parseable deadline are never overdue.
func (s *ReportService) OverdueTasks(ctx context.Context, now time.Time) []models.Task {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var overdue []models.Task
	for _, task := range s.tasks.List(ctx) {
		if IsFinishedStatus(task.Status) {
			continue
		}
		deadline, err := time.Parse(constants.DateLayout, strings.TrimSpace(task.GoverningDeadline()))
		if err != nil {
			continue
		}
		if deadline.Before(today) {
			overdue = append(overdue, task)
		}
	}
	return overdue
}

// LogOverdue writes one log line per overdue task
func (s *ReportService) LogOverdue(ctx context.Context, now time.Time) {
	overdue := s.OverdueTasks(ctx, now)
	if len(overdue) == 0 {
		log.Println("Overdue report: no overdue tasks")
		return
	}
	log.Printf("Overdue report: %d overdue tasks", len(overdue))
	for _, task := range overdue {
		log.Printf("  %s responsible=%s deadline=%s status=%s", task.TaskID, task.ResponsiblePerson, task.GoverningDeadline(), task.Status)
	}
}

func IsFinishedStatus(status string) bool {
	_, ok := finishedStatuses[strings.ToLower(strings.TrimSpace(status))]
	return ok
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
