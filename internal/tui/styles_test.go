package tui

import (
	"strings"
	"testing"
)

func TestPainter_PlainLeavesTextAlone(t *testing.T) {
	p := NewPainter(false)

	if got := p.Dir("src/"); got != "src/" {
		t.Errorf("Dir() = %q, want %q", got, "src/")
	}
	if got := p.File("a.txt"); got != "a.txt" {
		t.Errorf("File() = %q, want %q", got, "a.txt")
	}
	if got := p.Muted("d41d8cd9"); got != "d41d8cd9" {
		t.Errorf("Muted() = %q, want %q", got, "d41d8cd9")
	}
}

func TestPainter_StyledKeepsText(t *testing.T) {
	p := NewPainter(true)

	// lipgloss drops escape codes when no color profile is detected,
	// so only the visible text is asserted.
	if got := p.Dir("src/"); !strings.Contains(got, "src/") {
		t.Errorf("Dir() = %q, want it to contain %q", got, "src/")
	}
}
