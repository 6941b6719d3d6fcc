package tui

import tea "github.com/charmbracelet/bubbletea"

type (
	phoneChangedMsg struct{}
	progressMsg     int
)

// bridge carries events raised outside the event loop into it. Both
// channels hold one pending value; a newer value replaces an unread one.
type bridge struct {
	phone    chan struct{}
	progress chan int
}

func newBridge() *bridge {
	return &bridge{
		phone:    make(chan struct{}, 1),
		progress: make(chan int, 1),
	}
}

// phoneChanged never blocks: the validator calls it while the event loop
// may be inside Update.
func (b *bridge) phoneChanged() {
	select {
	case b.phone <- struct{}{}:
	default:
	}
}

func (b *bridge) reportProgress(p int) {
	select {
	case b.progress <- p:
		return
	default:
	}
	select {
	case <-b.progress:
	default:
	}
	select {
	case b.progress <- p:
	default:
	}
}

func (b *bridge) waitPhone() tea.Cmd {
	return func() tea.Msg {
		<-b.phone
		return phoneChangedMsg{}
	}
}

func (b *bridge) waitProgress() tea.Cmd {
	return func() tea.Msg {
		return progressMsg(<-b.progress)
	}
}
