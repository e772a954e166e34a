package domain

import "strings"

// Task is one entry in the task list. It has no identity beyond its position.
type Task struct {
	Title     string
	Completed bool
}

// NewTask constructs an open task with the given title.
func NewTask(title string) Task {
	return Task{Title: title}
}

// Toggled returns a copy of the task with its completion flag flipped.
func (t Task) Toggled() Task {
	t.Completed = !t.Completed
	return t
}

// IsBlankTitle reports whether a title would be empty after trimming whitespace.
func IsBlankTitle(title string) bool {
	return strings.TrimSpace(title) == ""
}

// CloneTasks copies a task slice so callers cannot alias store internals.
func CloneTasks(in []Task) []Task {
	out := make([]Task, len(in))
	copy(out, in)
	return out
}
