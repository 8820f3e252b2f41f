package script

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/wippyai/arena"
)

// SlotView describes one slot for display.
type SlotView struct {
	State    string
	Index    arena.Index
	Value    int64
	Occupied bool
}

// Session executes commands against one arena and keeps the guards taken by
// borrow and borrowmut until release.
type Session struct {
	arena     *arena.Arena[int64]
	shared    map[arena.Index][]*arena.ElementRef[int64]
	exclusive map[arena.Index]*arena.ElementRefMut[int64]
}

// NewSession creates a session over a.
func NewSession(a *arena.Arena[int64]) *Session {
	return &Session{
		arena:     a,
		shared:    make(map[arena.Index][]*arena.ElementRef[int64]),
		exclusive: make(map[arena.Index]*arena.ElementRefMut[int64]),
	}
}

// Arena returns the session's arena.
func (s *Session) Arena() *arena.Arena[int64] {
	return s.arena
}

// Exec runs one command and returns its printable result.
func (s *Session) Exec(cmd Command) (string, error) {
	switch cmd.Op {
	case OpAdd:
		return s.arena.Add(cmd.Value).String(), nil

	case OpRemove:
		v, err := s.arena.Remove(cmd.Index)
		if err != nil {
			return "", err
		}
		return "removed " + strconv.FormatInt(v, 10), nil

	case OpGet:
		if w, ok := s.exclusive[cmd.Index]; ok {
			return strconv.FormatInt(w.Get(), 10), nil
		}
		r, err := s.arena.Lookup(cmd.Index)
		if err != nil {
			return "", err
		}
		defer r.Release()
		return strconv.FormatInt(r.Get(), 10), nil

	case OpSet:
		if w, ok := s.exclusive[cmd.Index]; ok {
			w.Set(cmd.Value)
			return "ok", nil
		}
		w, err := s.arena.LookupMut(cmd.Index)
		if err != nil {
			return "", err
		}
		defer w.Release()
		w.Set(cmd.Value)
		return "ok", nil

	case OpBorrow:
		r, err := s.arena.Lookup(cmd.Index)
		if err != nil {
			return "", err
		}
		s.shared[cmd.Index] = append(s.shared[cmd.Index], r)
		return fmt.Sprintf("shared guard on %s (%d held)", cmd.Index, len(s.shared[cmd.Index])), nil

	case OpBorrowMut:
		w, err := s.arena.LookupMut(cmd.Index)
		if err != nil {
			return "", err
		}
		s.exclusive[cmd.Index] = w
		return fmt.Sprintf("exclusive guard on %s", cmd.Index), nil

	case OpRelease:
		n := s.release(cmd.Index)
		return fmt.Sprintf("released %d guard(s)", n), nil

	case OpLen:
		return strconv.Itoa(s.arena.Len()), nil

	case OpList:
		var b strings.Builder
		for i, v := range s.Slots() {
			if i > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(v.String())
		}
		return b.String(), nil

	default:
		return "", fmt.Errorf("unknown command %q", cmd.Op)
	}
}

func (s *Session) release(idx arena.Index) int {
	n := len(s.shared[idx])
	for _, r := range s.shared[idx] {
		r.Release()
	}
	delete(s.shared, idx)

	if w, ok := s.exclusive[idx]; ok {
		w.Release()
		delete(s.exclusive, idx)
		n++
	}
	return n
}

// Slots reports every slot in index order.
func (s *Session) Slots() []SlotView {
	views := make([]SlotView, 0, s.arena.Slots())
	for h := range s.arena.HandleIter().All() {
		idx := h.Index()
		v := SlotView{Index: idx}

		switch {
		case s.exclusive[idx] != nil:
			v.Occupied, v.Value, v.State = true, s.exclusive[idx].Get(), "exclusive"
		case len(s.shared[idx]) > 0:
			v.Occupied, v.Value = true, s.shared[idx][0].Get()
			v.State = fmt.Sprintf("shared(%d)", len(s.shared[idx]))
		default:
			if r, err := h.Get(); err == nil {
				v.Occupied, v.Value = true, r.Get()
				r.Release()
			}
		}
		views = append(views, v)
	}
	return views
}

func (v SlotView) String() string {
	if !v.Occupied {
		return fmt.Sprintf("%s: vacant", v.Index)
	}
	if v.State != "" {
		return fmt.Sprintf("%s: %d [%s]", v.Index, v.Value, v.State)
	}
	return fmt.Sprintf("%s: %d", v.Index, v.Value)
}

// Close releases every guard the session holds.
func (s *Session) Close() {
	for idx := range s.shared {
		s.release(idx)
	}
	for idx := range s.exclusive {
		s.release(idx)
	}
}

// Run executes a script line by line, writing each result to w. Command
// failures are reported inline and do not stop the script; the number of
// failed lines is returned.
func (s *Session) Run(r io.Reader, w io.Writer) (int, error) {
	failed := 0
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		cmd, err := Parse(sc.Text())
		if errors.Is(err, ErrBlank) {
			continue
		}
		if err != nil {
			failed++
			fmt.Fprintf(w, "line %d: %v\n", line, err)
			continue
		}

		out, err := s.Exec(cmd)
		if err != nil {
			failed++
			fmt.Fprintf(w, "> %s\nerror: %v\n", cmd, err)
			continue
		}
		fmt.Fprintf(w, "> %s\n%s\n", cmd, out)
	}
	return failed, sc.Err()
}
