package tui

import (
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvim-tech/qlaunch/pkg/desktop"
	"github.com/lvim-tech/qlaunch/pkg/runner"
	"github.com/lvim-tech/qlaunch/pkg/session"
)

type solidIcons struct{}

func (solidIcons) Resolve(string) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for x := 0; x < 2; x++ {
		for y := 0; y < 2; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	return img
}

type stubPreparer struct {
	fail map[string]error
}

func (p stubPreparer) Prepare(entry desktop.Entry) (runner.Command, error) {
	if err := p.fail[entry.Name]; err != nil {
		return runner.Command{}, err
	}
	return runner.Command{Path: "/usr/bin/" + entry.Exec, Argv: strings.Fields(entry.Exec)}, nil
}

var catalog = desktop.Catalog{
	{Name: "Firefox", Exec: "firefox --new-window"},
	{Name: "Files", Exec: "nautilus"},
	{Name: "Terminal", Exec: "foot"},
}

func newTestApp(t *testing.T, prep stubPreparer) (*App, *session.Session, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(40, 6)

	app := NewApp("Run", nil)
	app.screen = screen
	sess := session.New(catalog, solidIcons{}, prep, app, nil)
	return app, sess, screen
}

func readScreenLine(screen tcell.Screen, x, y, width int) string {
	var b strings.Builder
	for i := 0; i < width; i++ {
		r, _, _, _ := screen.GetContent(x+i, y)
		if r == 0 {
			r = ' '
		}
		b.WriteRune(r)
	}
	return strings.TrimRight(b.String(), " ")
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func typeText(t *testing.T, app *App, c Controller, text string) {
	t.Helper()
	for _, r := range text {
		_, done, err := app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone), c)
		require.NoError(t, err)
		require.False(t, done)
	}
}

func TestTypingFiltersRows(t *testing.T) {
	app, sess, screen := newTestApp(t, stubPreparer{})

	app.Draw()
	assert.Equal(t, "Run>", readScreenLine(screen, 0, 0, 40))
	assert.Equal(t, "", readScreenLine(screen, 0, 1, 40))

	typeText(t, app, sess, "F")
	app.Draw()
	assert.Equal(t, "Run> F", readScreenLine(screen, 0, 0, 40))
	assert.Equal(t, "Firefox  firefox --new-window", readScreenLine(screen, 3, 1, 37))
	assert.Equal(t, "Files  nautilus", readScreenLine(screen, 3, 2, 37))

	typeText(t, app, sess, "il")
	app.Draw()
	assert.Equal(t, "Files  nautilus", readScreenLine(screen, 3, 1, 37))
	assert.Equal(t, "", readScreenLine(screen, 0, 2, 40))

	_, _, err := app.HandleEvent(key(tcell.KeyBackspace2), sess)
	require.NoError(t, err)
	_, _, err = app.HandleEvent(key(tcell.KeyBackspace), sess)
	require.NoError(t, err)
	assert.Equal(t, "F", app.Input())
	assert.Len(t, app.rows, 2)

	_, _, err = app.HandleEvent(key(tcell.KeyCtrlU), sess)
	require.NoError(t, err)
	assert.Empty(t, app.rows)
}

func TestSwatchUsesIconColour(t *testing.T) {
	app, sess, screen := newTestApp(t, stubPreparer{})
	typeText(t, app, sess, "t")
	app.Draw()

	_, _, style, _ := screen.GetContent(0, 1)
	_, bg, _ := style.Decompose()
	assert.Equal(t, tcell.NewRGBColor(200, 0, 0), bg)
}

func TestSelectionAndActivate(t *testing.T) {
	app, sess, _ := newTestApp(t, stubPreparer{})

	_, done, err := app.HandleEvent(key(tcell.KeyEnter), sess)
	require.NoError(t, err)
	assert.False(t, done, "enter without rows does nothing")

	typeText(t, app, sess, "f")
	_, _, _ = app.HandleEvent(key(tcell.KeyDown), sess)
	_, _, _ = app.HandleEvent(key(tcell.KeyDown), sess)
	_, _, _ = app.HandleEvent(key(tcell.KeyCtrlK), sess)
	_, _, _ = app.HandleEvent(key(tcell.KeyCtrlJ), sess)

	cmd, done, err := app.HandleEvent(key(tcell.KeyEnter), sess)
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, []string{"nautilus"}, cmd.Argv)
}

func TestActivateFailureKeepsUIOpen(t *testing.T) {
	app, sess, screen := newTestApp(t, stubPreparer{fail: map[string]error{
		"Terminal": errors.New("unbalanced quotes"),
	}})

	typeText(t, app, sess, "ter")
	_, done, err := app.HandleEvent(key(tcell.KeyEnter), sess)
	require.NoError(t, err)
	assert.False(t, done)

	app.Draw()
	assert.Contains(t, readScreenLine(screen, 0, 5, 40), "Cannot launch Terminal")

	typeText(t, app, sess, "m")
	app.Draw()
	assert.Equal(t, "", readScreenLine(screen, 0, 5, 40))
}

func TestScrollKeepsSelectionVisible(t *testing.T) {
	app, _, screen := newTestApp(t, stubPreparer{})

	var rows []session.Row
	for _, name := range []string{"a1", "a2", "a3", "a4", "a5", "a6"} {
		rows = append(rows, session.Row{Entry: desktop.Entry{Name: name, Exec: name}})
	}
	app.SetRows(rows)
	for i := 0; i < 5; i++ {
		app.move(1)
	}
	app.Draw()

	assert.Equal(t, "a3  a3", readScreenLine(screen, 3, 1, 37))
	assert.Equal(t, "a6  a6", readScreenLine(screen, 3, 4, 37))
}

func TestRun(t *testing.T) {
	app, sess, screen := newTestApp(t, stubPreparer{})

	for _, ev := range []tcell.Event{
		tcell.NewEventKey(tcell.KeyRune, 'f', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyRune, 'i', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone),
		key(tcell.KeyEnter),
	} {
		require.NoError(t, screen.PostEvent(ev))
	}

	cmd, err := app.Run(screen, sess)
	require.NoError(t, err)
	assert.Equal(t, []string{"firefox", "--new-window"}, cmd.Argv)

	require.NoError(t, screen.PostEvent(key(tcell.KeyEscape)))
	_, err = app.Run(screen, sess)
	assert.ErrorIs(t, err, ErrQuit)
	assert.Equal(t, "fir", app.Input(), "input survives a second run")
}
