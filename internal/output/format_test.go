package output_test

import (
	"bytes"
	"testing"
	"time"

	"taskpad/internal/api"
	"taskpad/internal/output"
	"taskpad/internal/testutil"
)

func TestFormatListSection(t *testing.T) {
	var buf bytes.Buffer

	list := api.TaskList{ID: "L1", Title: "Home", Description: "Chores"}
	due := api.NewDate(2026, time.September, 1)
	tasks := []api.Task{
		{ID: "T1", Title: "Buy milk", Priority: api.PriorityMedium, Status: api.StatusOpen},
		{ID: "T2", Title: "Buy eggs", Priority: api.PriorityHigh, Due: &due, Status: api.StatusClosed},
	}

	output.FormatListHeader(&buf, list)
	for i, task := range tasks {
		output.FormatTask(&buf, i+1, task)
	}
	output.FormatCompletion(&buf, 1, 2, 50)

	testutil.Golden(t, "list_section", buf.Bytes())
}

func TestFormatTask_UntitledAndNewlines(t *testing.T) {
	var buf bytes.Buffer
	output.FormatTask(&buf, 1, api.Task{Title: "  ", Priority: api.PriorityLow, Status: api.StatusOpen})
	if buf.String() != "   1  [ ]  (untitled)  (low)\n" {
		t.Errorf("got %q", buf.String())
	}

	buf.Reset()
	output.FormatTask(&buf, 2, api.Task{Title: "a\nb", Priority: api.PriorityLow, Status: api.StatusOpen})
	if buf.String() != "   2  [ ]  a b  (low)\n" {
		t.Errorf("got %q", buf.String())
	}
}

func TestFormatListName(t *testing.T) {
	var buf bytes.Buffer
	output.FormatListName(&buf, api.TaskList{Title: "Home"})
	if buf.String() != "Home\n" {
		t.Errorf("got %q", buf.String())
	}

	buf.Reset()
	output.FormatListName(&buf, api.TaskList{Title: "Work", Description: "weekday things"})
	if buf.String() != "Work - weekday things\n" {
		t.Errorf("got %q", buf.String())
	}

	buf.Reset()
	output.FormatListName(&buf, api.TaskList{Title: " "})
	if buf.String() != "(untitled)\n" {
		t.Errorf("got %q", buf.String())
	}
}

func TestFormatCompletion(t *testing.T) {
	var buf bytes.Buffer
	output.FormatCompletion(&buf, 0, 0, 0)
	if buf.String() != "0/0 done (0%)\n" {
		t.Errorf("got %q", buf.String())
	}

	buf.Reset()
	output.FormatCompletion(&buf, 1, 3, 100.0/3)
	if buf.String() != "1/3 done (33%)\n" {
		t.Errorf("got %q", buf.String())
	}
}
