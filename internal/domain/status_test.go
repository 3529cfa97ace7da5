package domain

import (
	"errors"
	"testing"
	"time"
)

func TestComputeStatusBuckets(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.Local)
	day := 24 * time.Hour

	cases := []struct {
		name    string
		due     time.Duration
		current StatusID
		want    StatusID
	}{
		{"due today", 0, StatusTodo, StatusDueToday},
		{"due today late evening", 8 * time.Hour, StatusTodo, StatusDueToday},
		{"two days past", -2 * day, StatusTodo, StatusMissed},
		{"yesterday", -1 * day, StatusLater, StatusMissed},
		{"in three days", 3 * day, StatusTodo, StatusThisWeek},
		{"in seven days", 7 * day, StatusTodo, StatusThisWeek},
		{"in eight days", 8 * day, StatusTodo, StatusLater},
		{"in ten days", 10 * day, StatusTodo, StatusLater},
	}
	for _, tc := range cases {
		due := now.Add(tc.due)
		if got := ComputeStatus(&due, tc.current, true, now); got != tc.want {
			t.Fatalf("%s: ComputeStatus() = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestComputeStatusNoDueDateKeepsCurrent(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)
	if got := ComputeStatus(nil, StatusThisWeek, true, now); got != StatusThisWeek {
		t.Fatalf("ComputeStatus() = %q, want %q", got, StatusThisWeek)
	}
	if got := ComputeStatus(nil, "", true, now); got != StatusTodo {
		t.Fatalf("ComputeStatus() with empty status = %q, want %q", got, StatusTodo)
	}
}

func TestComputeStatusDoneIsSticky(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)
	past := now.Add(-72 * time.Hour)
	if got := ComputeStatus(&past, StatusDone, true, now); got != StatusDone {
		t.Fatalf("ComputeStatus() = %q, want done", got)
	}
	// Without the manual override the due date wins again.
	if got := ComputeStatus(&past, StatusDone, false, now); got != StatusMissed {
		t.Fatalf("ComputeStatus() = %q, want missed", got)
	}
}

func TestComputeAllStatuses(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)
	due := now.Add(48 * time.Hour)
	board := Board{
		Lists: []List{
			{ID: "l1", Title: "A", Cards: []Card{
				{ID: "c1", Title: "plain", Status: StatusTodo},
				{ID: "c2", Title: "due", Status: StatusTodo, DueDate: &due},
				{ID: "c3", Title: "done", Status: StatusDone, DueDate: &due},
			}},
		},
	}
	statuses := ComputeAllStatuses(board, now)
	if len(statuses) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(statuses))
	}
	if statuses["c1"] != StatusTodo {
		t.Fatalf("c1 = %q, want todo", statuses["c1"])
	}
	if statuses["c2"] != StatusThisWeek {
		t.Fatalf("c2 = %q, want this-week", statuses["c2"])
	}
	if statuses["c3"] != StatusDone {
		t.Fatalf("c3 = %q, want done", statuses["c3"])
	}
}

func TestStatusIDValidation(t *testing.T) {
	for _, s := range []StatusID{StatusTodo, StatusDueToday, StatusThisWeek, StatusLater, StatusDone, StatusMissed} {
		if !s.IsValid() {
			t.Fatalf("expected %q to be valid", s)
		}
	}
	if StatusID("blocked").IsValid() {
		t.Fatal("expected unknown status to be invalid")
	}
}

func TestParseStatus(t *testing.T) {
	if got, err := ParseStatus("done"); err != nil || got != StatusDone {
		t.Fatalf("ParseStatus(done) = %q, %v", got, err)
	}
	if got, err := ParseStatus(""); err != nil || got != StatusTodo {
		t.Fatalf("ParseStatus(empty) = %q, %v", got, err)
	}
	if _, err := ParseStatus("blocked"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("ParseStatus(blocked) error = %v, want ErrInvalidStatus", err)
	}
}

func TestDefaultStatusCatalog(t *testing.T) {
	catalog := DefaultStatusCatalog()
	if len(catalog) != 6 {
		t.Fatalf("expected 6 statuses, got %d", len(catalog))
	}
	seen := map[StatusID]struct{}{}
	for _, def := range catalog {
		if !def.ID.IsValid() {
			t.Fatalf("catalog entry %q is not a valid status id", def.ID)
		}
		if def.Name == "" || def.Color == "" {
			t.Fatalf("catalog entry %q missing name or color", def.ID)
		}
		if _, dup := seen[def.ID]; dup {
			t.Fatalf("catalog entry %q duplicated", def.ID)
		}
		seen[def.ID] = struct{}{}
	}
}
