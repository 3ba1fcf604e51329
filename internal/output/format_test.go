package output

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"cues/internal/service"
)

var ist = time.FixedZone("IST", 5*3600+30*60)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in   time.Time
		want string
	}{
		{time.Time{}, "No due date"},
		{time.Date(2025, 6, 12, 22, 30, 0, 0, time.UTC), "13th June, 2025    04:00"},
		{time.Date(2025, 6, 1, 0, 0, 0, 0, ist), "1st June, 2025    00:00"},
		{time.Date(2025, 6, 2, 9, 5, 0, 0, ist), "2nd June, 2025    09:05"},
		{time.Date(2025, 6, 3, 23, 59, 0, 0, ist), "3rd June, 2025    23:59"},
		{time.Date(2025, 6, 11, 12, 0, 0, 0, ist), "11th June, 2025    12:00"},
		{time.Date(2025, 6, 12, 12, 0, 0, 0, ist), "12th June, 2025    12:00"},
		{time.Date(2025, 6, 21, 12, 0, 0, 0, ist), "21st June, 2025    12:00"},
		{time.Date(2025, 6, 22, 12, 0, 0, 0, ist), "22nd June, 2025    12:00"},
		{time.Date(2025, 12, 31, 12, 0, 0, 0, ist), "31st December, 2025    12:00"},
	}

	for _, tt := range tests {
		if got := FormatDate(tt.in, ist); got != tt.want {
			t.Errorf("FormatDate(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatTask(t *testing.T) {
	due := time.Date(2025, 6, 12, 22, 30, 0, 0, time.UTC)

	tests := []struct {
		name        string
		task        service.Task
		showProject bool
		want        string
	}{
		{
			name: "open with description",
			task: service.Task{ID: 5, Title: "Write report", Description: "Q2 numbers", Priority: service.PriorityHigh, Due: due, ProjectID: 2},
			want: fmt.Sprintf("[5] [ ] %-35s ● 13th June, 2025    04:00\n    - Q2 numbers\n", "Write report"),
		},
		{
			name: "done without priority or due",
			task: service.Task{ID: 6, Title: "Stretch", Done: true, ProjectID: 2},
			want: fmt.Sprintf("[6] [x] %-35s · No due date\n", "Stretch"),
		},
		{
			name:        "with project",
			task:        service.Task{ID: 7, Title: "Call\nplumber", Priority: service.PriorityLow, ProjectID: 3},
			showProject: true,
			want:        fmt.Sprintf("[7] [ ] <3> %-35s ● No due date\n", "Call plumber"),
		},
		{
			name: "untitled, blank description",
			task: service.Task{ID: 8, Title: "  ", Description: " \n "},
			want: fmt.Sprintf("[8] [ ] %-35s · No due date\n", "(untitled)"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			FormatTask(&buf, tt.task, ist, tt.showProject)
			if got := buf.String(); got != tt.want {
				t.Errorf("got:\n%q\nwant:\n%q", got, tt.want)
			}
		})
	}
}

func TestFormatProject(t *testing.T) {
	var buf bytes.Buffer
	FormatProject(&buf, service.Project{ID: 1, Name: "Home"}, false)
	FormatProject(&buf, service.Project{ID: 2, Name: "Work"}, true)
	FormatProject(&buf, service.Project{ID: 3}, false)

	want := "  [1] Home\n* [2] Work\n  [3] (unnamed)\n"
	if got := buf.String(); got != want {
		t.Errorf("got:\n%q\nwant:\n%q", got, want)
	}
}

func TestFormatProjectHeader(t *testing.T) {
	var buf bytes.Buffer
	FormatProjectHeader(&buf, service.Project{ID: 2, Name: "Work"}, true)

	want := "------------\n[2] Work [active]\n------------\n"
	if got := buf.String(); got != want {
		t.Errorf("got:\n%q\nwant:\n%q", got, want)
	}
}

func TestFormatUser(t *testing.T) {
	var buf bytes.Buffer
	FormatUser(&buf, service.User{
		Username:  "ada",
		Email:     "ada@example.com",
		CreatedAt: time.Date(2025, 6, 1, 4, 30, 0, 0, time.UTC),
	}, ist)

	want := "Username: ada\nEmail:    ada@example.com\nJoined:   1st June, 2025    10:00\n"
	if got := buf.String(); got != want {
		t.Errorf("got:\n%q\nwant:\n%q", got, want)
	}
}
