// Package session binds the catalog, filter, icon resolver and runner to a
// result view. The view is injected, so the session never goes looking for
// widgets of its own.
package session

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/lvim-tech/qlaunch/pkg/desktop"
	"github.com/lvim-tech/qlaunch/pkg/query"
	"github.com/lvim-tech/qlaunch/pkg/runner"
)

// ErrNoSelection is returned when Activate is given an index outside the
// current result rows.
var ErrNoSelection = errors.New("no such result row")

// Row is one displayed result.
type Row struct {
	Entry desktop.Entry
	Icon  image.Image
}

// View displays result rows.
type View interface {
	SetRows(rows []Row)
	Clear()
	Notice(msg string)
}

// IconResolver maps an icon reference to a bitmap.
type IconResolver interface {
	Resolve(ref string) image.Image
}

// Preparer turns an entry into an executable command.
type Preparer interface {
	Prepare(entry desktop.Entry) (runner.Command, error)
}

// Session is the controller behind a launcher window.
type Session struct {
	catalog  desktop.Catalog
	icons    IconResolver
	preparer Preparer
	view     View
	logger   *slog.Logger

	rows []Row
}

// New creates a session over a loaded catalog.
func New(catalog desktop.Catalog, icons IconResolver, preparer Preparer, view View, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		catalog:  catalog,
		icons:    icons,
		preparer: preparer,
		view:     view,
		logger:   logger.With("component", "session"),
	}
}

// TextChanged recomputes the results for text and redraws the view.
// Empty text clears the list.
func (s *Session) TextChanged(text string) {
	matches := query.Filter(s.catalog, text)
	if len(matches) == 0 {
		s.rows = nil
		s.view.Clear()
		return
	}

	rows := make([]Row, 0, len(matches))
	for _, entry := range matches {
		rows = append(rows, Row{Entry: entry, Icon: s.icons.Resolve(entry.Icon)})
	}
	s.rows = rows
	s.view.SetRows(rows)
}

// Activate prepares the command of the row at index. On failure the view
// shows a notice and the session stays usable.
func (s *Session) Activate(index int) (runner.Command, error) {
	if index < 0 || index >= len(s.rows) {
		return runner.Command{}, fmt.Errorf("%w: %d", ErrNoSelection, index)
	}

	entry := s.rows[index].Entry
	cmd, err := s.preparer.Prepare(entry)
	if err != nil {
		s.logger.Debug("cannot launch", "name", entry.Name, "error", err)
		s.view.Notice(fmt.Sprintf("Cannot launch %s: %v", entry.Name, err))
		return runner.Command{}, err
	}

	s.logger.Debug("activated", "name", entry.Name, "command", cmd.String())
	return cmd, nil
}

// Fail reports a failed hand-off of an activated command to the view.
func (s *Session) Fail(cmd runner.Command, err error) {
	s.logger.Error("launch failed", "command", cmd.String(), "error", err)
	s.view.Notice(fmt.Sprintf("Launch failed: %v", err))
}
