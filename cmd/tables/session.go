package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/debatestats/gateway/internal/render"
	"github.com/debatestats/gateway/internal/table"
)

// session drives one table interactively: each command mutates the
// presentation state and the table is rendered again.
type session[T any] struct {
	t      *table.Table[T]
	tier   table.Tier
	format string
	out    io.Writer
}

const sessionHelp = `commands:
  sort <column>    cycle the sort of a column (none, asc, desc)
  expand <row>     toggle a row's detail panel
  click <row>      open a row
  page <n>         show page n (zero-based)
  tier <tier>      core, sm, md or lg
  format <name>    text, html, json or csv
  help             show this help
  quit             leave the session
`

func (s *session[T]) render() error {
	f, err := render.ByName(s.format, nil)
	if err != nil {
		return err
	}
	if err := f.Format(s.t.View(s.tier), s.out); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	return nil
}

// exec runs one command line. It reports whether the session should end.
func (s *session[T]) exec(line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	cmd, arg := fields[0], strings.Join(fields[1:], " ")

	switch cmd {
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		_, err := io.WriteString(s.out, sessionHelp)
		return false, err
	case "sort":
		if _, err := s.t.ClickHeader(arg); err != nil {
			return false, err
		}
	case "expand":
		if _, err := s.t.ToggleRow(arg); err != nil {
			return false, err
		}
	case "click":
		return false, s.t.ClickRow(arg)
	case "page":
		n, err := strconv.Atoi(arg)
		if err != nil || n < 0 {
			return false, fmt.Errorf("page must be a non-negative number, got %q", arg)
		}
		s.t.SetPage(n)
	case "tier":
		tier, err := table.ParseTier(arg)
		if err != nil {
			return false, err
		}
		s.tier = tier
	case "format":
		if _, err := render.ByName(arg, nil); err != nil {
			return false, err
		}
		s.format = arg
	default:
		return false, fmt.Errorf("unknown command %q (try help)", cmd)
	}
	return false, s.render()
}

// run renders the table, then reads commands from in until quit or EOF.
// Command errors are reported and the session continues.
func (s *session[T]) run(in io.Reader) error {
	if err := s.render(); err != nil {
		return err
	}
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}
		quit, err := s.exec(scanner.Text())
		if quit {
			return nil
		}
		if err != nil {
			if errors.Is(err, table.ErrConfig) {
				return err
			}
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	}
}
