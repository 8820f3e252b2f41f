package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/arena"
	"github.com/wippyai/arena/internal/script"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code: 0 on
// success, 1 on setup or I/O errors, 2 when script commands failed.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("arenaview", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		scriptFile  = fs.String("script", "-", "Script file to run (- for stdin)")
		capacity    = fs.Int("capacity", 0, "Preallocated slot capacity")
		verbose     = fs.Bool("v", false, "Log arena events to stderr")
		interactive = fs.Bool("i", false, "Interactive mode with TUI")
	)
	if err := fs.Parse(args); err != nil {
		return 1
	}

	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		defer l.Sync()
		prev := arena.Logger()
		arena.SetLogger(l)
		defer arena.SetLogger(prev)
	}

	a := arena.New[int64](arena.WithCapacity(*capacity))
	session := script.NewSession(a)
	defer session.Close()

	if *interactive {
		if err := runInteractive(session); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	failed, err := runScript(session, *scriptFile, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if failed > 0 {
		return 2
	}
	return 0
}

func runScript(session *script.Session, path string, out io.Writer) (int, error) {
	var in io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return 0, fmt.Errorf("open script: %w", err)
		}
		defer f.Close()
		in = f
	}

	failed, err := session.Run(in, out)
	if err != nil {
		return failed, fmt.Errorf("read script: %w", err)
	}

	fmt.Fprintf(out, "\n%d slot(s), %d occupied\n", session.Arena().Slots(), session.Arena().Len())
	return failed, nil
}

func runInteractive(session *script.Session) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) || !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("interactive mode requires a terminal")
	}
	_, err := tea.NewProgram(newInteractiveModel(session), tea.WithAltScreen()).Run()
	return err
}
