package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerService_ScheduleOverdueReport(t *testing.T) {
	scheduler := NewSchedulerService(time.UTC)
	reports := newReportService(t)

	scheduled, err := scheduler.ScheduleOverdueReport("0 0 9 * * *", reports)

	require.NoError(t, err)
	assert.True(t, scheduled)
	assert.Equal(t, 1, scheduler.Entries())

	scheduler.Start()
	scheduler.Stop()
}

func TestSchedulerService_Disabled(t *testing.T) {
	scheduler := NewSchedulerService(time.UTC)

	for _, spec := range []string{"", "off", "OFF"} {
		scheduled, err := scheduler.ScheduleOverdueReport(spec, newReportService(t))
		require.NoError(t, err)
		assert.False(t, scheduled)
	}
	assert.Equal(t, 0, scheduler.Entries())
}

func TestSchedulerService_InvalidSpec(t *testing.T) {
	scheduler := NewSchedulerService(time.UTC)

	_, err := scheduler.ScheduleOverdueReport("every day please", newReportService(t))

	assert.Error(t, err)
}
