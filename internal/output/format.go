// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"taskpad/internal/api"
)

const (
	// ListSeparator is the separator line for list sections.
	ListSeparator = "------------"
)

// FormatTask formats one task row.
// Format: "{N:>4}  [{x| }]  {TITLE}  ({PRIORITY}[, due DATE])\n"
func FormatTask(w io.Writer, num int, task api.Task) {
	mark := " "
	if task.Status == api.StatusClosed {
		mark = "x"
	}
	title := normalizeTitle(task.Title)
	suffix := strings.ToLower(string(task.Priority))
	if task.Due != nil {
		suffix += ", due " + task.Due.String()
	}
	fmt.Fprintf(w, "%4d  [%s]  %s  (%s)\n", num, mark, title, suffix)
}

// FormatListHeader formats a list section header.
func FormatListHeader(w io.Writer, list api.TaskList) {
	title := normalizeListTitle(list.Title)
	fmt.Fprintln(w, ListSeparator)
	fmt.Fprintln(w, title)
	if list.Description != "" {
		fmt.Fprintln(w, list.Description)
	}
	fmt.Fprintln(w, ListSeparator)
}

// FormatListName formats a list name for the lists command.
func FormatListName(w io.Writer, list api.TaskList) {
	title := normalizeListTitle(list.Title)
	if list.Description != "" {
		title += " - " + list.Description
	}
	fmt.Fprintln(w, title)
}

// FormatCompletion formats the completion footer for a list.
// percent comes from store.Completion and is rounded for display.
func FormatCompletion(w io.Writer, done, total int, percent float64) {
	fmt.Fprintf(w, "%d/%d done (%.0f%%)\n", done, total, percent)
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}

// normalizeListTitle normalizes a list title for display.
// Empty or whitespace-only titles become "(untitled)".
func normalizeListTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
