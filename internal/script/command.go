// Package script interprets line-oriented arena commands for arenaview.
package script

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/wippyai/arena"
)

// Op is a command verb.
type Op string

const (
	OpAdd       Op = "add"
	OpRemove    Op = "remove"
	OpGet       Op = "get"
	OpSet       Op = "set"
	OpBorrow    Op = "borrow"
	OpBorrowMut Op = "borrowmut"
	OpRelease   Op = "release"
	OpLen       Op = "len"
	OpList      Op = "list"
)

// ErrBlank is returned by Parse for empty and comment lines.
var ErrBlank = errors.New("blank line")

// arity is the number of arguments each op takes: index and/or value.
var arity = map[Op]struct{ index, value bool }{
	OpAdd:       {value: true},
	OpRemove:    {index: true},
	OpGet:       {index: true},
	OpSet:       {index: true, value: true},
	OpBorrow:    {index: true},
	OpBorrowMut: {index: true},
	OpRelease:   {index: true},
	OpLen:       {},
	OpList:      {},
}

// Command is one parsed line.
type Command struct {
	Op    Op
	Index arena.Index
	Value int64
}

func (c Command) String() string {
	a := arity[c.Op]
	switch {
	case a.index && a.value:
		return fmt.Sprintf("%s %s %d", c.Op, c.Index, c.Value)
	case a.index:
		return fmt.Sprintf("%s %s", c.Op, c.Index)
	case a.value:
		return fmt.Sprintf("%s %d", c.Op, c.Value)
	default:
		return string(c.Op)
	}
}

// Parse reads a command such as "add 10", "set 0 5" or "borrow invalid".
// Everything after '#' is ignored.
func Parse(line string) (Command, error) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, ErrBlank
	}

	cmd := Command{Op: Op(strings.ToLower(fields[0])), Index: arena.InvalidIndex()}
	a, ok := arity[cmd.Op]
	if !ok {
		return Command{}, fmt.Errorf("unknown command %q", fields[0])
	}

	want := 0
	if a.index {
		want++
	}
	if a.value {
		want++
	}
	args := fields[1:]
	if len(args) != want {
		return Command{}, fmt.Errorf("%s: expected %d argument(s), got %d", cmd.Op, want, len(args))
	}

	if a.index {
		idx, err := parseIndex(args[0])
		if err != nil {
			return Command{}, fmt.Errorf("%s: %w", cmd.Op, err)
		}
		cmd.Index = idx
		args = args[1:]
	}
	if a.value {
		v, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return Command{}, fmt.Errorf("%s: invalid value %q", cmd.Op, args[0])
		}
		cmd.Value = v
	}
	return cmd, nil
}

func parseIndex(s string) (arena.Index, error) {
	if strings.EqualFold(s, "invalid") {
		return arena.InvalidIndex(), nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return arena.InvalidIndex(), fmt.Errorf("invalid index %q", s)
	}
	return arena.NewIndex(v), nil
}
