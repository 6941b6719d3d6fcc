package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool

	calls   []string
	args    []string
	flushes int
}

func (f *fakeExec) record(call string, args ...string) error {
	f.calls = append(f.calls, call)
	f.args = append(f.args, args...)
	return nil
}

func (f *fakeExec) isLoggedIn(context.Context) bool { return f.loggedIn }
func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) Modules(context.Context) error              { return f.record("modules") }
func (f *fakeExec) Use(_ context.Context, name string) error   { return f.record("use", name) }
func (f *fakeExec) List(context.Context) error                 { return f.record("list") }
func (f *fakeExec) Show(_ context.Context, id string) error    { return f.record("show", id) }
func (f *fakeExec) Add(context.Context) error                  { return f.record("add") }
func (f *fakeExec) Edit(_ context.Context, id string) error    { return f.record("edit", id) }
func (f *fakeExec) Delete(_ context.Context, id string) error  { return f.record("delete", id) }
func (f *fakeExec) Confirm(context.Context) error              { return f.record("confirm") }
func (f *fakeExec) Cancel(context.Context) error               { return f.record("cancel") }
func (f *fakeExec) Approve(_ context.Context, id string) error { return f.record("approve", id) }
func (f *fakeExec) flush()                                     { f.flushes++ }

func stubPrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, 0, len(a))
		for _, v := range a {
			if s, ok := v.(string); ok {
				parts = append(parts, s)
			}
		}
		lines = append(lines, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	stubPrintln(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"modules",
		"use gallery",
		"l",
		"add",
		"",
		"show 7",
		"edit 7",
		"delete 7",
		"cancel",
		"delete 7",
		"yes",
		"approve 9",
		"logout",
		"exit",
		"list",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewReader(input))

	assert.Equal(t, []string{
		"login", "modules", "use", "list", "add", "show", "edit",
		"delete", "cancel", "delete", "confirm", "approve", "logout",
	}, exec.calls)
	assert.Equal(t, []string{"gallery", "7", "7", "7", "7", "9"}, exec.args)
	assert.Equal(t, 14, exec.flushes, "every command except exit is followed by a flush")
}

func TestRunREPL_UsageAndUnknown(t *testing.T) {
	lines := stubPrintln(t)

	input := strings.NewReader("use\ndelete\nfoobar\nquit\n")
	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewReader(input))

	assert.Empty(t, exec.calls)
	assert.Contains(t, *lines, "Usage: use <module>")
	assert.Contains(t, *lines, "Usage: delete <id>")
	assert.Contains(t, *lines, "Unknown command: foobar")
	assert.Contains(t, *lines, "Bye!")
}

func TestRunREPL_HelpDependsOnSession(t *testing.T) {
	lines := stubPrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("help\nlogin\nhelp")))

	assert.Contains(t, *lines, helpLoggedOut)
	assert.Contains(t, *lines, helpLoggedIn, "last line without newline is still executed")
}
