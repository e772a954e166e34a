package app

import "github.com/hylla/tickit/internal/domain"

// Store is the ordered task collection plus its selection cursor.
//
// When a selection is present it always satisfies 0 <= selected < len(tasks); every
// mutation that can shrink the collection repairs the cursor before returning.
type Store struct {
	tasks       []domain.Task
	selected    int
	hasSelected bool
}

// NewStore constructs a store over a copy of tasks. The first task is selected when
// the collection is non-empty.
func NewStore(tasks []domain.Task) *Store {
	s := &Store{tasks: domain.CloneTasks(tasks)}
	s.ResetSelection()
	return s
}

// Append adds an open task at the end. Titles are not validated here.
func (s *Store) Append(title string) {
	s.tasks = append(s.tasks, domain.NewTask(title))
}

// Toggle flips completion of the task at index. Invalid indexes are ignored.
func (s *Store) Toggle(index int) {
	if !s.valid(index) {
		return
	}
	s.tasks[index] = s.tasks[index].Toggled()
}

// Delete removes the task at index and repairs the selection cursor: an empty
// collection clears it, removing the last slot selects the new last task, otherwise the
// cursor keeps its numeric position and now points at the task that shifted into it.
func (s *Store) Delete(index int) {
	if !s.valid(index) {
		return
	}
	s.tasks = append(s.tasks[:index], s.tasks[index+1:]...)
	switch {
	case len(s.tasks) == 0:
		s.ClearSelection()
	case !s.hasSelected:
		// A suspended cursor stays suspended.
	case index == len(s.tasks):
		s.selected = len(s.tasks) - 1
	case s.selected >= len(s.tasks):
		s.selected = len(s.tasks) - 1
	}
}

// All returns a copy of the collection in display order.
func (s *Store) All() []domain.Task {
	return domain.CloneTasks(s.tasks)
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Selected returns the cursor position, if any.
func (s *Store) Selected() (int, bool) {
	if !s.hasSelected {
		return 0, false
	}
	return s.selected, true
}

// ResetSelection selects the first task, or clears the cursor when empty.
func (s *Store) ResetSelection() {
	if len(s.tasks) == 0 {
		s.ClearSelection()
		return
	}
	s.selected = 0
	s.hasSelected = true
}

// ClearSelection removes the cursor.
func (s *Store) ClearSelection() {
	s.selected = 0
	s.hasSelected = false
}

// MoveUp moves the cursor one task up without wrapping.
func (s *Store) MoveUp() {
	if s.hasSelected && s.selected > 0 {
		s.selected--
	}
}

// MoveDown moves the cursor one task down without wrapping.
func (s *Store) MoveDown() {
	if s.hasSelected && s.selected < len(s.tasks)-1 {
		s.selected++
	}
}

// ToggleSelected flips completion of the selected task.
func (s *Store) ToggleSelected() {
	if idx, ok := s.Selected(); ok {
		s.Toggle(idx)
	}
}

// DeleteSelected removes the selected task.
func (s *Store) DeleteSelected() {
	if idx, ok := s.Selected(); ok {
		s.Delete(idx)
	}
}

func (s *Store) valid(index int) bool {
	return index >= 0 && index < len(s.tasks)
}
