package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/arena"
	"github.com/wippyai/arena/internal/script"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ops.txt")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRunScript_File(t *testing.T) {
	path := writeScript(t, "add 1\nadd 2\nremove 0\nget 0\n")

	session := script.NewSession(arena.New[int64]())
	defer session.Close()

	var out strings.Builder
	failed, err := runScript(session, path, &out)
	require.NoError(t, err)
	assert.Equal(t, 1, failed)
	assert.Contains(t, out.String(), "2 slot(s), 1 occupied")
}

func TestRunScript_MissingFile(t *testing.T) {
	session := script.NewSession(arena.New[int64]())
	_, err := runScript(session, filepath.Join(t.TempDir(), "nope"), &strings.Builder{})
	assert.Error(t, err)
}

func TestRun_ExitCodes(t *testing.T) {
	clean := writeScript(t, "add 1\nget 0\n")
	failing := writeScript(t, "add 1\nremove 0\nremove 0\n")

	tests := []struct {
		name   string
		args   []string
		code   int
		stdout string
		stderr string
	}{
		{"clean script", []string{"-script", clean}, 0, "1 slot(s), 1 occupied", ""},
		{"failed commands", []string{"-script", failing}, 2, "1 slot(s), 0 occupied", ""},
		{"verbose failed commands", []string{"-v", "-script", failing}, 2, "removed_element", ""},
		{"missing script", []string{"-script", filepath.Join(t.TempDir(), "nope")}, 1, "", "Error: open script"},
		{"unknown flag", []string{"-nope"}, 1, "", "flag provided but not defined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := arena.Logger()
			var stdout, stderr strings.Builder

			code := run(tt.args, &stdout, &stderr)

			assert.Equal(t, tt.code, code)
			assert.Contains(t, stdout.String(), tt.stdout)
			assert.Contains(t, stderr.String(), tt.stderr)
			assert.Same(t, before, arena.Logger(), "package logger restored on return")
		})
	}
}

func TestInteractiveModel(t *testing.T) {
	session := script.NewSession(arena.New[int64]())
	defer session.Close()
	m := newInteractiveModel(session)

	for _, line := range []string{"add 5", "borrow 0", "remove 0", "   ", "nonsense"} {
		m.input.SetValue(line)
		m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	}

	require.Len(t, m.history, 4)
	assert.Error(t, m.history[2].err, "remove under a shared guard")
	assert.Empty(t, m.input.Value())

	view := m.View()
	for _, want := range []string{"Arena Inspector", "1 slot(s), 1 occupied", "shared(1)", "> nonsense"} {
		assert.Contains(t, view, want)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.NotNil(t, cmd, "esc quits")
}
