package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// SchedulerService wraps cron-based jobs.
type SchedulerService struct {
	cron *cron.Cron
}

func NewSchedulerService(loc *time.Location) *SchedulerService {
	return &SchedulerService{
		cron: cron.New(cron.WithLocation(loc), cron.WithSeconds()),
	}
}

// ScheduleOverdueReport registers the overdue report on a six-field cron spec.
// The spec "off" registers nothing.
func (s *SchedulerService) ScheduleOverdueReport(spec string, reports *ReportService) (bool, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" || strings.EqualFold(spec, "off") {
		return false, nil
	}
	_, err := s.cron.AddFunc(spec, func() {
		reports.LogOverdue(context.Background(), time.Now())
	})
	if err != nil {
		return false, fmt.Errorf("invalid overdue report schedule %q: %w", spec, err)
	}
	log.Printf("Overdue report scheduled (%s)", spec)
	return true, nil
}

func (s *SchedulerService) Start() {
	s.cron.Start()
}

func (s *SchedulerService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// Entries reports how many jobs are registered
func (s *SchedulerService) Entries() int {
	return len(s.cron.Entries())
}
