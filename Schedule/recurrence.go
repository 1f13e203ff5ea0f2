package Schedule

import (
	"Vigil/Models"
)

// IsDue reports whether a task recurs on the given weekday label. Tasks
// created through template instantiation always carry an explicit day set,
// so an empty list here should not happen for them; when it does show up
// (legacy rows created before the default was enforced) the task is treated
// as due every day.
func IsDue(task Models.Task, weekday string) bool {
	days := task.DayList()
	if len(days) == 0 {
		return true
	}
	for _, day := range days {
		if day == weekday {
			return true
		}
	}
	return false
}

// DueTasks filters and returns the tasks of a zone that recur on weekday.
func DueTasks(tasks []Models.Task, weekday string) []Models.Task {
	due := make([]Models.Task, 0, len(tasks))
	for _, task := range tasks {
		if IsDue(task, weekday) {
			due = append(due, task)
		}
	}
	return due
}
