package term

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"
)

func TestSink(t *testing.T) {
	s := NewSink()
	require.False(t, s.Applied())
	require.Equal(t, lipgloss.NoColor{}, s.Style().GetForeground())

	require.NoError(t, s.Apply("#112233"))
	require.True(t, s.Applied())
	require.Equal(t, lipgloss.Color("#112233"), s.Style().GetForeground())

	require.Error(t, s.Apply("nope"))
	require.Equal(t, lipgloss.Color("#112233"), s.Style().GetForeground())

	s.Remove()
	s.Remove()
	require.False(t, s.Applied())
	require.Equal(t, lipgloss.NoColor{}, s.Style().GetForeground())
}

func TestRenderKeepsText(t *testing.T) {
	s := NewSink()
	require.NoError(t, s.Apply("#00FF00"))
	require.Contains(t, s.Render("TODO"), "TODO")
}
