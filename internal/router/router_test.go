package router

import (
	"testing"

	"github.com/nsharma/lingua/internal/screen"

	tea "charm.land/bubbletea/v2"
)

type stubScreen struct {
	name     string
	inited   bool
	teardown *[]string
}

func (s *stubScreen) Init() tea.Cmd {
	s.inited = true
	return nil
}

func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(width, height int) string               { return s.name }
func (s *stubScreen) Title() string                               { return s.name }

func (s *stubScreen) Teardown() {
	if s.teardown != nil {
		*s.teardown = append(*s.teardown, s.name)
	}
}

func TestPushAndPop(t *testing.T) {
	home := &stubScreen{name: "home"}
	r := New(home)

	if r.Depth() != 1 || r.Active() != screen.Screen(home) {
		t.Fatalf("initial stack: depth=%d", r.Depth())
	}

	chat := &stubScreen{name: "chat"}
	r.Push(chat)
	if !chat.inited {
		t.Error("Push did not Init the screen")
	}
	if r.Active() != screen.Screen(chat) {
		t.Error("pushed screen not active")
	}

	r.Pop()
	if r.Active() != screen.Screen(home) {
		t.Error("Pop did not restore home")
	}

	// The last screen can never be popped.
	r.Pop()
	if r.Depth() != 1 {
		t.Errorf("depth after popping last screen = %d", r.Depth())
	}
}

func TestPopRunsTeardown(t *testing.T) {
	var torn []string
	r := New(&stubScreen{name: "home"})
	r.Push(&stubScreen{name: "voice", teardown: &torn})

	r.Pop()
	if len(torn) != 1 || torn[0] != "voice" {
		t.Errorf("teardown calls = %v", torn)
	}
}

func TestReplace(t *testing.T) {
	var torn []string
	r := New(&stubScreen{name: "home"})
	r.Push(&stubScreen{name: "old", teardown: &torn})

	next := &stubScreen{name: "new"}
	r.Replace(next)

	if len(torn) != 1 || torn[0] != "old" {
		t.Errorf("teardown calls = %v", torn)
	}
	if !next.inited || r.Active() != screen.Screen(next) {
		t.Error("replacement not initialized and active")
	}
	if r.Depth() != 2 {
		t.Errorf("depth = %d, want 2", r.Depth())
	}
}

func TestTeardownAllTopFirst(t *testing.T) {
	var torn []string
	r := New(&stubScreen{name: "home", teardown: &torn})
	r.Push(&stubScreen{name: "chat", teardown: &torn})
	r.Push(&stubScreen{name: "voice", teardown: &torn})

	r.TeardownAll()

	want := []string{"voice", "chat", "home"}
	if len(torn) != len(want) {
		t.Fatalf("teardown calls = %v", torn)
	}
	for i := range want {
		if torn[i] != want[i] {
			t.Fatalf("teardown order = %v, want %v", torn, want)
		}
	}
}

func TestUpdateNavigationMessages(t *testing.T) {
	r := New(&stubScreen{name: "home"})

	pushed := &stubScreen{name: "pushed"}
	r.Update(PushScreenMsg{Screen: pushed})
	if r.Active() != screen.Screen(pushed) {
		t.Error("PushScreenMsg not handled")
	}

	replaced := &stubScreen{name: "replaced"}
	r.Update(ReplaceScreenMsg{Screen: replaced})
	if r.Active() != screen.Screen(replaced) {
		t.Error("ReplaceScreenMsg not handled")
	}

	r.Update(PopScreenMsg{})
	if r.Depth() != 1 {
		t.Errorf("depth after PopScreenMsg = %d", r.Depth())
	}
}
