package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/seth/cli/cmd"
	"github.com/ardnew/seth/lang"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "seth-cli-test-*")
	if err != nil {
		panic(err)
	}

	os.Setenv("HOME", dir)
	os.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	os.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))

	code := m.Run()

	os.RemoveAll(dir)
	os.Exit(code)
}

type result struct {
	out, err string
	exit     int
	exited   bool
	runErr   error
}

func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()

	var out, errs bytes.Buffer

	r := result{exit: -1}
	stdio := &cmd.Stdio{In: strings.NewReader(stdin), Out: &out, Err: &errs}

	func() {
		defer func() {
			if v := recover(); v != nil && v != "exit" {
				panic(v)
			}
		}()

		r.runErr = RunIO(t.Context(), stdio, func(code int) {
			r.exit, r.exited = code, true
			panic("exit")
		}, args...)
	}()

	r.out, r.err = out.String(), errs.String()

	return r
}

func writeSource(t *testing.T, name, src string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestRun_Files(t *testing.T) {
	first := writeSource(t, "a.seth", "var greeting = \"hello\"\n")
	second := writeSource(t, "b.seth", "print greeting + \", world\"\n")

	r := run(t, "", first, second, first)
	if r.runErr != nil {
		t.Fatalf("Run: %v (%s)", r.runErr, r.err)
	}

	if r.out != "hello, world\n" {
		t.Errorf("stdout %q", r.out)
	}
}

func TestRun_Stdin(t *testing.T) {
	r := run(t, "print 2 ** 10\n")
	if r.runErr != nil {
		t.Fatalf("Run: %v (%s)", r.runErr, r.err)
	}

	if r.out != "1024\n" {
		t.Errorf("stdout %q", r.out)
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		is     error
		exit   int
		stderr string
	}{
		{
			"syntax",
			"print 1\nvar = 2\n",
			lang.ErrSyntax,
			cmd.ExitDataErr,
			"[line 2] Error at '=': Expect name after 'var'.\n",
		},
		{
			"runtime",
			"print -\"x\"\n",
			lang.ErrRuntime,
			cmd.ExitSoftware,
			"[line 1] Error: Unsupported operator '-' for: String\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := run(t, "", "run", writeSource(t, "x.seth", tt.source))

			if !errors.Is(r.runErr, tt.is) {
				t.Fatalf("err = %v, want %v", r.runErr, tt.is)
			}

			if got := cmd.ExitCode(r.runErr); got != tt.exit {
				t.Errorf("ExitCode = %d, want %d", got, tt.exit)
			}

			if r.err != tt.stderr {
				t.Errorf("stderr %q, want %q", r.err, tt.stderr)
			}

			if r.out != "" {
				t.Errorf("stdout %q", r.out)
			}
		})
	}
}

func TestRun_MissingFile(t *testing.T) {
	r := run(t, "", filepath.Join(t.TempDir(), "missing.seth"))

	if !errors.Is(r.runErr, cmd.ErrOpenSource) {
		t.Fatalf("err = %v", r.runErr)
	}

	if cmd.ExitCode(r.runErr) != cmd.ExitNoInput {
		t.Errorf("ExitCode = %d", cmd.ExitCode(r.runErr))
	}
}

func TestTokens(t *testing.T) {
	r := run(t, "var x = 'a' # c\n", "tokens")
	if r.runErr != nil {
		t.Fatalf("tokens: %v (%s)", r.runErr, r.err)
	}

	want := strings.Join([]string{
		"Var @1",
		"Identifier(x) @1",
		"Equal @1",
		"Character('a') @1",
		`Comment(" c") @1`,
		"Newline @1",
		"Indent(0) @2",
		"Eof @2",
	}, "\n") + "\n"

	if r.out != want {
		t.Errorf("stdout:\n%s\nwant:\n%s", r.out, want)
	}
}

func TestTokens_LexicalError(t *testing.T) {
	r := run(t, "print \"open\n", "tokens")

	if !errors.Is(r.runErr, lang.ErrSyntax) {
		t.Fatalf("err = %v", r.runErr)
	}

	if !strings.Contains(r.err, "Unfinished string.") {
		t.Errorf("stderr %q", r.err)
	}
}

func TestAST(t *testing.T) {
	src := "var a = 1 + 2 * 3\nprint a\n"

	r := run(t, src, "ast")
	if r.runErr != nil {
		t.Fatalf("ast: %v (%s)", r.runErr, r.err)
	}

	if want := "(var a = (+ 1 (* 2 3)))\n(print a)\n"; r.out != want {
		t.Errorf("sexpr %q, want %q", r.out, want)
	}

	r = run(t, src, "ast", "--format", "json", "--indent", "0")
	if r.runErr != nil {
		t.Fatalf("ast json: %v", r.runErr)
	}

	if !strings.HasPrefix(r.out, `[{"init":{"left":{"kind":"Integer","node":"literal","value":1}`) {
		t.Errorf("json %q", r.out)
	}

	r = run(t, src, "ast", "-f", "yaml")
	if r.runErr != nil {
		t.Fatalf("ast yaml: %v", r.runErr)
	}

	if !strings.Contains(r.out, "node: print") {
		t.Errorf("yaml %q", r.out)
	}
}

func TestRepl_RequiresTerminal(t *testing.T) {
	r := run(t, "", "repl")

	if !errors.Is(r.runErr, cmd.ErrNotTerminal) {
		t.Fatalf("err = %v", r.runErr)
	}

	if cmd.ExitCode(r.runErr) != cmd.ExitUsage {
		t.Errorf("ExitCode = %d", cmd.ExitCode(r.runErr))
	}
}

func TestVersion(t *testing.T) {
	r := run(t, "", "--version")

	if !r.exited || r.exit != 0 {
		t.Fatalf("exit = %d (exited %v)", r.exit, r.exited)
	}

	if !strings.HasPrefix(r.out, "seth ") {
		t.Errorf("stdout %q", r.out)
	}
}
