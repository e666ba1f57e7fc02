// Package tui is the terminal front end: a text entry on the first line and
// the matching applications below it.
package tui

import (
	"errors"
	"image"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lvim-tech/qlaunch/pkg/icons"
	"github.com/lvim-tech/qlaunch/pkg/runner"
	"github.com/lvim-tech/qlaunch/pkg/session"
)

// ErrQuit is returned by Run when the user leaves without launching.
var ErrQuit = errors.New("quit")

// Controller receives input events from the UI.
type Controller interface {
	TextChanged(text string)
	Activate(index int) (runner.Command, error)
}

var (
	styleDefault = tcell.StyleDefault
	stylePrompt  = tcell.StyleDefault.Bold(true)
	styleCommand = tcell.StyleDefault.Dim(true)
	styleNotice  = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

const swatchWidth = 2

// App implements session.View on a tcell screen.
type App struct {
	screen tcell.Screen
	prompt string
	logger *slog.Logger

	input    []rune
	rows     []session.Row
	selected int
	offset   int
	notice   string

	swatches map[image.Image]tcell.Color
}

// NewApp creates the UI. prompt is drawn in front of the input.
func NewApp(prompt string, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		prompt:   prompt,
		logger:   logger.With("component", "tui"),
		swatches: make(map[image.Image]tcell.Color),
	}
}

// SetRows replaces the result list and resets the selection.
func (a *App) SetRows(rows []session.Row) {
	a.rows = rows
	a.selected = 0
	a.offset = 0
}

// Clear empties the result list.
func (a *App) Clear() {
	a.SetRows(nil)
}

// Notice shows msg on the bottom line until the input changes.
func (a *App) Notice(msg string) {
	a.notice = msg
}

// Input returns the current query text.
func (a *App) Input() string {
	return string(a.input)
}

// Run draws the UI on screen and processes events until the user activates
// a row or quits. The screen must be initialised; Run does not finalise it.
func (a *App) Run(screen tcell.Screen, c Controller) (runner.Command, error) {
	a.screen = screen
	a.screen.SetStyle(styleDefault)

	for {
		a.Draw()

		ev := a.screen.PollEvent()
		if ev == nil {
			return runner.Command{}, ErrQuit
		}

		cmd, done, err := a.HandleEvent(ev, c)
		if err != nil {
			return runner.Command{}, err
		}
		if done {
			return cmd, nil
		}
	}
}

// HandleEvent applies one event. done is set when a row was activated and
// cmd is ready to execute.
func (a *App) HandleEvent(ev tcell.Event, c Controller) (cmd runner.Command, done bool, err error) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		if a.screen != nil {
			a.screen.Sync()
		}
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return runner.Command{}, false, ErrQuit
		case tcell.KeyEnter:
			if len(a.rows) == 0 {
				return runner.Command{}, false, nil
			}
			cmd, err := c.Activate(a.selected)
			if err != nil {
				a.logger.Debug("activation failed", "error", err)
				return runner.Command{}, false, nil
			}
			return cmd, true, nil
		case tcell.KeyUp, tcell.KeyCtrlK, tcell.KeyCtrlP:
			a.move(-1)
		case tcell.KeyDown, tcell.KeyCtrlJ, tcell.KeyCtrlN, tcell.KeyTab:
			a.move(1)
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			if len(a.input) > 0 {
				a.input = a.input[:len(a.input)-1]
				a.changed(c)
			}
		case tcell.KeyCtrlU:
			if len(a.input) > 0 {
				a.input = a.input[:0]
				a.changed(c)
			}
		case tcell.KeyRune:
			a.input = append(a.input, ev.Rune())
			a.changed(c)
		}
	}
	return runner.Command{}, false, nil
}

func (a *App) changed(c Controller) {
	a.notice = ""
	c.TextChanged(string(a.input))
}

func (a *App) move(delta int) {
	if len(a.rows) == 0 {
		return
	}
	a.selected = max(0, min(len(a.rows)-1, a.selected+delta))
}

// Draw renders the whole UI.
func (a *App) Draw() {
	if a.screen == nil {
		return
	}
	a.screen.Clear()
	width, height := a.screen.Size()

	x := drawText(a.screen, 0, 0, width, a.prompt+"> ", stylePrompt)
	x = drawText(a.screen, x, 0, width, string(a.input), styleDefault)
	a.screen.ShowCursor(min(x, width-1), 0)

	visible := height - 2
	if visible > 0 {
		a.scroll(visible)
		for i := 0; i < visible && a.offset+i < len(a.rows); i++ {
			idx := a.offset + i
			a.drawRow(1+i, width, a.rows[idx], idx == a.selected)
		}
	}

	if a.notice != "" && height > 1 {
		drawText(a.screen, 0, height-1, width, a.notice, styleNotice)
	}

	a.screen.Show()
}

func (a *App) scroll(visible int) {
	if a.selected < a.offset {
		a.offset = a.selected
	}
	if a.selected >= a.offset+visible {
		a.offset = a.selected - visible + 1
	}
}

func (a *App) drawRow(y, width int, row session.Row, selected bool) {
	swatch := styleDefault.Background(a.swatch(row.Icon))
	for x := 0; x < swatchWidth && x < width; x++ {
		a.screen.SetContent(x, y, ' ', nil, swatch)
	}

	name := styleDefault
	if selected {
		name = name.Reverse(true)
	}
	x := drawText(a.screen, swatchWidth+1, y, width, row.Entry.Name, name)
	drawText(a.screen, x+2, y, width, row.Entry.Exec, styleCommand)
}

func (a *App) swatch(img image.Image) tcell.Color {
	if img == nil {
		return tcell.ColorDefault
	}
	if c, ok := a.swatches[img]; ok {
		return c
	}
	avg := icons.Average(img)
	c := tcell.NewRGBColor(int32(avg.R), int32(avg.G), int32(avg.B))
	a.swatches[img] = c
	return c
}

// drawText writes s from x up to maxX and returns the column after it.
func drawText(screen tcell.Screen, x, y, maxX int, s string, style tcell.Style) int {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > maxX {
			break
		}
		screen.SetContent(x, y, r, nil, style)
		x += w
	}
	return x
}
