package utils

import (
	"fmt"
	"strconv"

	"github.com/yukikurage/task-tracker/internal/constants"
	"github.com/yukikurage/task-tracker/internal/models"
)

// NextTaskID returns the next identifier for a category: the prefix followed by
// one more than the larger of floor and the highest existing numeric suffix,
// zero-padded to two digits. floor is the highest number already issued, so
// identifiers removed from existing are never handed out again.
func NextTaskID(category models.TaskCategory, existing []models.Task, floor int) string {
	next := max(HighestTaskSequence(category, existing), floor) + 1
	return fmt.Sprintf("%s%0*d", category.Prefix(), constants.MinTaskIDDigits, next)
}

// HighestTaskSequence returns the largest numeric suffix among identifiers of
// the category, or 0
func HighestTaskSequence(category models.TaskCategory, tasks []models.Task) int {
	highest := 0
	for _, task := range tasks {
		if n, ok := TaskIDSequence(category.Prefix(), task.TaskID); ok && n > highest {
			highest = n
		}
	}
	return highest
}

// TaskIDSequence extracts the numeric suffix of an identifier with the given
// prefix. Only the leading run of digits counts, so "FT3a" reads as 3.
func TaskIDSequence(prefix, taskID string) (int, bool) {
	if len(taskID) < len(prefix) || taskID[:len(prefix)] != prefix {
		return 0, false
	}
	suffix := taskID[len(prefix):]
	end := 0
	for end < len(suffix) && suffix[end] >= '0' && suffix[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(suffix[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
