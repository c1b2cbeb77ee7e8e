package ui

import (
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func testTheme() *Theme {
	return &Theme{Colors: NewTheme(ThemeConfig{}).Colors}
}

// newTestProgram creates a tea.Program that needs no TTY.
func newTestProgram(m tea.Model) *tea.Program {
	return tea.NewProgram(m,
		tea.WithInput(strings.NewReader("")),
		tea.WithOutput(io.Discard),
		tea.WithoutRenderer(),
	)
}

func startTestProgram(p *tea.Program) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = p.Run()
	}()
	// Allow the program goroutine to initialize before sending messages.
	time.Sleep(10 * time.Millisecond)
	return done
}

func waitForProgram(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Error("tea.Program did not exit within 2 second timeout")
	}
}

func TestInteractiveSpinner_SetTitle(t *testing.T) {
	m := newSpinnerModel(testTheme(), "base")
	p := newTestProgram(m)
	s := &interactiveSpinner{program: p, once: sync.Once{}}
	done := startTestProgram(p)

	s.SetTitle("frontend")
	s.Stop()

	waitForProgram(t, done)
}

func TestInteractiveSpinner_Stop_Idempotent(t *testing.T) {
	m := newSpinnerModel(testTheme(), "Generating")
	p := newTestProgram(m)
	s := &interactiveSpinner{program: p, once: sync.Once{}}
	done := startTestProgram(p)

	s.Stop()
	s.Stop()
	s.Stop()

	waitForProgram(t, done)
}

func TestSpinnerModel_Update(t *testing.T) {
	m := newSpinnerModel(testTheme(), "base")

	updated, cmd := m.Update(spinnerTitleMsg("database"))
	sm := updated.(spinnerModel)
	if sm.title != "database" {
		t.Errorf("title = %q, want database", sm.title)
	}
	if cmd != nil {
		t.Error("title update should not return a command")
	}
	if !strings.Contains(sm.View(), "database") {
		t.Errorf("View() = %q, want title", sm.View())
	}

	updated, cmd = sm.Update(spinnerStopMsg{})
	sm = updated.(spinnerModel)
	if !sm.done || cmd == nil {
		t.Error("stop message should finish the model and quit")
	}
	if sm.View() != "" {
		t.Errorf("View() after stop = %q, want empty", sm.View())
	}
}

func TestSpinnerModel_CtrlCQuits(t *testing.T) {
	m := newSpinnerModel(testTheme(), "base")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !updated.(spinnerModel).done || cmd == nil {
		t.Error("ctrl+c should stop the spinner")
	}
}

func TestSpinnerModel_Update_SpinnerTickMsg(t *testing.T) {
	m := newSpinnerModel(testTheme(), "Ticking")
	tickCmd := m.Init()
	if tickCmd == nil {
		t.Fatal("Init should return a non-nil tick command")
	}
	msg := tickCmd()
	if _, ok := msg.(spinner.TickMsg); !ok {
		t.Skip("unexpected message type from tick command")
	}
	updated, _ := m.Update(msg)
	if updated.(spinnerModel).done {
		t.Error("tick should not stop the spinner")
	}
}

func TestProgressImpl_HeadlessSpinner(t *testing.T) {
	hm := NewHeadlessManager()
	hm.ForceHeadless(true)

	var buf strings.Builder
	prog := newProgressImpl(testTheme(), hm, &buf)
	sp := prog.Spinner("base")
	sp.SetTitle("base")
	sp.SetTitle("frontend")
	sp.Stop()
	sp.SetTitle("ignored")

	if got, want := buf.String(), "base\nfrontend\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestProgressImpl_NoColorFallsBackToHeadless(t *testing.T) {
	hm := NewHeadlessManager()
	hm.ForceHeadless(false)

	var buf strings.Builder
	theme := testTheme()
	theme.NoColor = true
	sp := newProgressImpl(theme, hm, &buf).Spinner("git")
	sp.Stop()

	if _, ok := sp.(*headlessSpinner); !ok {
		t.Errorf("Spinner() = %T, want *headlessSpinner", sp)
	}
}
