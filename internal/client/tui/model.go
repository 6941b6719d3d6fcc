package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dmitrijs2005/nehruadmin/internal/client/models"
	"github.com/dmitrijs2005/nehruadmin/internal/client/notify"
	"github.com/dmitrijs2005/nehruadmin/internal/client/upload"
)

// Form is the membership application behind the screen.
type Form interface {
	Fields() []string
	Set(field, value string)
	SetPhoto(file *upload.File)
	PhoneState() models.ValidationState
	OnPhoneChange(fn func(models.ValidationState))
	Submit(ctx context.Context, onProgress upload.ProgressFunc) (models.Record, error)
	Close()
}

const (
	phoneField = "phone"
	maxNotes   = 3
)

var labels = map[string]string{
	"name":          "Full name",
	"aadhar_number": "Aadhar number",
	"phone":         "Phone",
	"address":       "Address",
}

type submittedMsg struct {
	err error
}

// Model is the bubbletea model of the membership form. The last input is
// the photo path; the others map one to one onto the form's fields.
type Model struct {
	ctx    context.Context
	form   Form
	queue  *notify.Queue
	bridge *bridge

	fields []string
	inputs []textinput.Model
	focus  int

	phone      models.ValidationState
	submitting bool
	progress   int
	notes      []notify.Notification
	width      int
}

// New builds the screen for form. Notifications raised by form must go to
// queue.
func New(ctx context.Context, form Form, queue *notify.Queue) Model {
	m := Model{
		ctx:    ctx,
		form:   form,
		queue:  queue,
		bridge: newBridge(),
		fields: form.Fields(),
		phone:  form.PhoneState(),
	}
	b := m.bridge
	form.OnPhoneChange(func(models.ValidationState) { b.phoneChanged() })

	for _, f := range m.fields {
		in := textinput.New()
		in.Prompt = "> "
		in.CharLimit = 200
		in.Width = 48
		if f == phoneField {
			in.Placeholder = "10-digit mobile number"
			in.CharLimit = 16
		}
		m.inputs = append(m.inputs, in)
	}
	photo := textinput.New()
	photo.Prompt = "> "
	photo.Placeholder = "/path/to/photo.jpg"
	photo.Width = 48
	m.inputs = append(m.inputs, photo)

	m.inputs[0].Focus()
	return m
}

// Run shows the form until the user quits.
func Run(ctx context.Context, form Form, queue *notify.Queue) error {
	defer form.Close()
	_, err := tea.NewProgram(New(ctx, form, queue), tea.WithContext(ctx)).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.bridge.waitPhone(), m.bridge.waitProgress())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case phoneChangedMsg:
		m.phone = m.form.PhoneState()
		return m, m.bridge.waitPhone()

	case progressMsg:
		if m.submitting {
			m.progress = int(msg)
		}
		return m, m.bridge.waitProgress()

	case submittedMsg:
		m.submitting = false
		m.progress = 0
		if msg.err == nil {
			for i := range m.inputs {
				m.inputs[i].SetValue("")
			}
			m = m.focusOn(0)
		}
		m.collect()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.form.Close()
			return m, tea.Quit
		case "tab", "down":
			return m.focusOn((m.focus + 1) % len(m.inputs)), nil
		case "shift+tab", "up":
			return m.focusOn((m.focus - 1 + len(m.inputs)) % len(m.inputs)), nil
		case "ctrl+s":
			return m.submit()
		case "enter":
			if m.focus < len(m.inputs)-1 {
				return m.focusOn(m.focus + 1), nil
			}
			return m.submit()
		}
	}

	return m.updateInput(msg)
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	before := m.inputs[m.focus].Value()
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if after := m.inputs[m.focus].Value(); after != before && m.focus < len(m.fields) {
		m.form.Set(m.fields[m.focus], after)
	}
	return m, cmd
}

func (m Model) focusOn(i int) Model {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
	return m
}

// submit loads the photo and sends the application in the background.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}

	var photo *upload.File
	if path := m.inputs[len(m.inputs)-1].Value(); path != "" {
		f, err := upload.LoadFile(path)
		if err != nil {
			m.queue.Notify(notify.Failure(fmt.Sprintf("Photo: %v", err)))
			m.collect()
			return m, nil
		}
		photo = f
	}
	m.form.SetPhoto(photo)

	m.submitting = true
	m.progress = 0
	ctx, form, b := m.ctx, m.form, m.bridge
	return m, func() tea.Msg {
		_, err := form.Submit(ctx, b.reportProgress)
		return submittedMsg{err: err}
	}
}

// collect moves queued notifications onto the screen, keeping the newest.
func (m *Model) collect() {
	m.notes = append(m.notes, m.queue.Drain()...)
	if len(m.notes) > maxNotes {
		m.notes = m.notes[len(m.notes)-maxNotes:]
	}
}
