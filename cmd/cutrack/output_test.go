package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

type sample struct {
	TaskID   string
	Duration int64
}

func renderTo(t *testing.T, format string) string {
	t.Helper()
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	err := render(cmd, format, sample{TaskID: "abc", Duration: 90}, func(p *printer) {
		p.line("%s %d", "abc", 90)
	})
	if err != nil {
		t.Fatalf("render %s: %v", format, err)
	}
	return buf.String()
}

func TestRenderFormats(t *testing.T) {
	t.Parallel()
	if got := renderTo(t, outputText); got != "abc 90\n" {
		t.Fatalf("unexpected text output %q", got)
	}
	if got := renderTo(t, outputJSON); !strings.Contains(got, `"TaskID": "abc"`) || !strings.Contains(got, `"Duration": 90`) {
		t.Fatalf("unexpected json output %q", got)
	}
	if got := renderTo(t, outputYAML); !strings.Contains(got, "taskid: abc") || !strings.Contains(got, "duration: 90") {
		t.Fatalf("unexpected yaml output %q", got)
	}
}

func TestRootRejectsUnknownOutput(t *testing.T) {
	t.Parallel()
	root := newRootCmd()
	root.SetArgs([]string{"--output", "xml", "stats"})
	root.SetOut(&bytes.Buffer{})
	if err := root.Execute(); err == nil || !strings.Contains(err.Error(), "--output") {
		t.Fatalf("expected output format error, got %v", err)
	}
}

func TestRootRegistersCommands(t *testing.T) {
	t.Parallel()
	root := newRootCmd()
	for _, path := range [][]string{
		{"auth", "login"}, {"auth", "logout"}, {"auth", "whoami"},
		{"tasks", "list"}, {"tasks", "search"}, {"tasks", "mine"}, {"tasks", "add"}, {"tasks", "remove"}, {"tasks", "clear-completed"},
		{"track", "start"}, {"track", "stop"}, {"track", "status"}, {"track", "watch"},
		{"stats"}, {"history"}, {"entries"}, {"tui"},
	} {
		cmd, _, err := root.Find(path)
		if err != nil || cmd == root {
			t.Fatalf("command %v not registered: %v", path, err)
		}
	}
}
