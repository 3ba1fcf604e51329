// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"cues/internal/service"
)

const (
	// ListSeparator is the separator line around project sections.
	ListSeparator = "------------"

	// NoDueDate is shown for tasks without a due date.
	NoDueDate = "No due date"

	// TitleWidth is the column width task titles are padded to.
	TitleWidth = 35

	dateLayout = "January, 2006    15:04"
)

// styles holds the styles bound to one writer. Writers that are not
// terminals get a renderer with the Ascii profile, so styles render as plain text.
type styles struct {
	high, medium, low lipgloss.Style
	muted             lipgloss.Style
	done              lipgloss.Style
	active            lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		high:   r.NewStyle().Foreground(lipgloss.Color("#F38BA8")),
		medium: r.NewStyle().Foreground(lipgloss.Color("#F9E2AF")),
		low:    r.NewStyle().Foreground(lipgloss.Color("#A6E3A1")),
		muted:  r.NewStyle().Foreground(lipgloss.Color("#6C7086")),
		done:   r.NewStyle().Faint(true),
		active: r.NewStyle().Foreground(lipgloss.Color("#A78BFA")).Bold(true),
	}
}

func (s styles) priorityMarker(p service.Priority) string {
	switch p {
	case service.PriorityHigh:
		return s.high.Render("●")
	case service.PriorityMedium:
		return s.medium.Render("●")
	case service.PriorityLow:
		return s.low.Render("●")
	}
	return s.muted.Render("·")
}

// FormatTask formats one task line, followed by its description if it has one.
// Format: "[ID] [x] <PROJECT> TITLE MARKER DUE" where <PROJECT> is only
// printed when showProject is set and TITLE is padded to TitleWidth.
func FormatTask(w io.Writer, task service.Task, loc *time.Location, showProject bool) {
	st := newStyles(w)

	box := "[ ]"
	if task.Done {
		box = "[x]"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%d] %s ", task.ID, box)
	if showProject {
		fmt.Fprintf(&b, "<%d> ", task.ProjectID)
	}

	title := fmt.Sprintf("%-*s", TitleWidth, normalizeTitle(task.Title))
	if task.Done {
		title = st.done.Render(title)
	}
	b.WriteString(title)
	b.WriteString(" ")
	b.WriteString(st.priorityMarker(task.Priority))
	b.WriteString(" ")
	b.WriteString(st.muted.Render(FormatDate(task.Due, loc)))
	fmt.Fprintln(w, b.String())

	if desc := normalizeText(task.Description); desc != "" {
		fmt.Fprintf(w, "    - %s\n", desc)
	}
}

// FormatProject formats a project line for the projects command.
// The active project is prefixed with "*".
func FormatProject(w io.Writer, project service.Project, active bool) {
	st := newStyles(w)
	line := fmt.Sprintf("[%d] %s", project.ID, normalizeName(project.Name))
	if active {
		fmt.Fprintf(w, "%s %s\n", st.active.Render("*"), st.active.Render(line))
		return
	}
	fmt.Fprintf(w, "  %s\n", line)
}

// FormatProjectHeader formats a project section header for tasks --all.
func FormatProjectHeader(w io.Writer, project service.Project, active bool) {
	title := fmt.Sprintf("[%d] %s", project.ID, normalizeName(project.Name))
	if active {
		title += " [active]"
	}
	fmt.Fprintln(w, ListSeparator)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, ListSeparator)
}

// FormatUser formats the whoami block.
func FormatUser(w io.Writer, user service.User, loc *time.Location) {
	fmt.Fprintf(w, "Username: %s\n", user.Username)
	fmt.Fprintf(w, "Email:    %s\n", user.Email)
	fmt.Fprintf(w, "Joined:   %s\n", FormatDate(user.CreatedAt, loc))
}

// FormatDate renders t in loc as "13th June, 2025    04:00".
// The zero time renders as NoDueDate.
func FormatDate(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return NoDueDate
	}
	if loc == nil {
		loc = time.Local
	}
	t = t.In(loc)
	return fmt.Sprintf("%d%s %s", t.Day(), ordinalSuffix(t.Day()), t.Format(dateLayout))
}

func ordinalSuffix(day int) string {
	if day%100 >= 11 && day%100 <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = normalizeText(title)
	if title == "" {
		return "(untitled)"
	}
	return title
}

// normalizeName normalizes a project name for display.
// Empty or whitespace-only names become "(unnamed)".
func normalizeName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "(unnamed)"
	}
	return name
}

func normalizeText(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return s
}
