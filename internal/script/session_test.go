package script

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/arena"
)

func exec(t *testing.T, s *Session, line string) (string, error) {
	t.Helper()
	cmd, err := Parse(line)
	require.NoError(t, err, line)
	return s.Exec(cmd)
}

func mustExec(t *testing.T, s *Session, line string) string {
	t.Helper()
	out, err := exec(t, s, line)
	require.NoError(t, err, line)
	return out
}

func TestSession_Scenario(t *testing.T) {
	s := NewSession(arena.New[int64]())
	defer s.Close()

	steps := []struct{ line, want string }{
		{"add 10", "0"},
		{"add 20", "1"},
		{"remove 0", "removed 10"},
		{"len", "1"},
		{"add 30", "0"},
		{"get 0", "30"},
		{"get 1", "20"},
		{"set 1 21", "ok"},
		{"get 1", "21"},
	}
	for _, st := range steps {
		require.Equal(t, st.want, mustExec(t, s, st.line), st.line)
	}

	_, err := exec(t, s, "get invalid")
	assert.ErrorIs(t, err, arena.ErrInvalidIndexUsage)
}

func TestSession_Guards(t *testing.T) {
	s := NewSession(arena.FromSlice([]int64{1, 2}))
	defer s.Close()

	assert.Equal(t, "shared guard on 0 (1 held)", mustExec(t, s, "borrow 0"))
	mustExec(t, s, "borrow 0")

	for _, line := range []string{"borrowmut 0", "set 0 5", "remove 0"} {
		_, err := exec(t, s, line)
		assert.ErrorIs(t, err, arena.ErrBorrow, line)
	}
	assert.Equal(t, "1", mustExec(t, s, "get 0"), "get under shared guard")

	mustExec(t, s, "borrowmut 1")
	assert.Equal(t, "ok", mustExec(t, s, "set 1 9"), "set through held exclusive guard")
	assert.Equal(t, "9", mustExec(t, s, "get 1"), "get through held exclusive guard")

	assert.Equal(t, "0: 1 [shared(2)]\n1: 9 [exclusive]", mustExec(t, s, "list"))

	assert.Equal(t, "released 2 guard(s)", mustExec(t, s, "release 0"))
	mustExec(t, s, "release 1")
	mustExec(t, s, "remove 0")

	assert.Equal(t, "0: vacant\n1: 9", mustExec(t, s, "list"))
}

func TestSession_Close(t *testing.T) {
	a := arena.FromSlice([]int64{1, 2})
	s := NewSession(a)
	mustExec(t, s, "borrow 0")
	mustExec(t, s, "borrowmut 1")
	s.Close()

	for _, idx := range []arena.Index{0, 1} {
		w, err := a.LookupMut(idx)
		require.NoError(t, err, "slot %d still borrowed after Close", idx)
		w.Release()
	}
}

func TestSession_Run(t *testing.T) {
	s := NewSession(arena.New[int64]())
	defer s.Close()

	script := `# build
add 10
add 20

remove 0
remove 0
bogus
get 1
`
	var out strings.Builder
	failed, err := s.Run(strings.NewReader(script), &out)
	require.NoError(t, err)
	require.Equal(t, 2, failed, out.String())

	text := out.String()
	for _, want := range []string{
		"> add 10\n0\n",
		"> remove 0\nremoved 10\n",
		"> remove 0\nerror: [remove] removed_element at index 0",
		"line 7: unknown command \"bogus\"",
		"> get 1\n20\n",
	} {
		assert.Contains(t, text, want)
	}
}
