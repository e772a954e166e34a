package domain

import "testing"

func TestNewTaskStartsOpen(t *testing.T) {
	task := NewTask("write report")
	if task.Title != "write report" {
		t.Fatalf("unexpected title %q", task.Title)
	}
	if task.Completed {
		t.Fatal("expected new task to be open")
	}
}

func TestTaskToggled(t *testing.T) {
	task := NewTask("a")
	done := task.Toggled()
	if !done.Completed {
		t.Fatal("expected toggled task to be completed")
	}
	if task.Completed {
		t.Fatal("expected original task to be unchanged")
	}
	if done.Toggled().Completed {
		t.Fatal("expected second toggle to reopen task")
	}
}

func TestIsBlankTitle(t *testing.T) {
	cases := map[string]bool{
		"":      true,
		"   ":   true,
		"\t\n":  true,
		"a":     false,
		"  a  ": false,
		"a\tb":  false,
	}
	for title, want := range cases {
		if got := IsBlankTitle(title); got != want {
			t.Fatalf("IsBlankTitle(%q) = %t, want %t", title, got, want)
		}
	}
}

func TestCloneTasksDoesNotAlias(t *testing.T) {
	in := []Task{NewTask("a"), NewTask("b")}
	out := CloneTasks(in)
	out[0].Title = "changed"
	if in[0].Title != "a" {
		t.Fatalf("expected clone to be independent, got %q", in[0].Title)
	}
	if got := CloneTasks(nil); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil clone, got %#v", got)
	}
}
