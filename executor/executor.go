package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"

	"github.com/xschemadev/urlfetch/logger"
	"github.com/xschemadev/urlfetch/ui"
)

// waitDelay bounds how long a cancelled command may keep its output pipes
// open through grandchildren that outlived the kill.
const waitDelay = 2 * time.Second

// Options configures how commands are built and where they run
type Options struct {
	Template string // command the URL is appended to, e.g. "yt-dlp -q"
	Cwd      string // working directory, default: process working directory
	Quote    bool   // shell-quote the URL before appending it
}

// Result is the outcome of one command run
type Result struct {
	URL      string
	Command  string
	ExitCode int // -1 when the command could not be started
	Stdout   string
	Stderr   string
	Err      error
}

// Failed reports whether the command could not be run or exited non-zero
func (r Result) Failed() bool {
	return r.Err != nil
}

type Executor struct {
	opts Options
	p    *ui.Printer
}

func New(opts Options, p *ui.Printer) *Executor {
	if p == nil {
		p = ui.Discard()
	}
	return &Executor{opts: opts, p: p}
}

// Command returns the shell command line run for url
func (e *Executor) Command(url string) string {
	arg := url
	if e.opts.Quote {
		arg = shellquote.Join(url)
	}
	return e.opts.Template + " " + arg
}

// Execute runs the command for url through the system shell and waits for it.
// Failures are printed and returned in the result, never as a panic or abort.
func (e *Executor) Execute(ctx context.Context, url string) Result {
	command := e.Command(url)
	res := Result{URL: url, Command: command}

	e.p.Verbosef("Executing: %s", command)
	logger.Debug("executing command", "url", url, "command", command, "cwd", e.opts.Cwd)

	name, flag := shell()
	cmd := exec.CommandContext(ctx, name, flag, command)
	cmd.Dir = e.opts.Cwd
	cmd.WaitDelay = waitDelay
	killGroupOnCancel(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res.Stdout = stdout.String()
	res.Stderr = stderr.String()

	if err != nil {
		res.ExitCode = -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		}
		if msg := strings.TrimSpace(res.Stderr); msg != "" {
			res.Err = fmt.Errorf("%w\n%s", err, msg)
		} else {
			res.Err = err
		}

		e.p.ErrorMsg("Command failed: "+command, res.Err)
		logger.Warn("command failed", "url", url, "exit_code", res.ExitCode, "error", err)
		return res
	}

	e.p.VerboseDim(strings.TrimRight(res.Stdout, "\r\n"))
	logger.Debug("command finished", "url", url, "stdout_bytes", len(res.Stdout))
	return res
}

// ExecuteAll runs the command once per URL, one at a time, in order.
// A failing command does not stop the ones after it; only ctx cancellation does.
func (e *Executor) ExecuteAll(ctx context.Context, urls []string) ([]Result, error) {
	if e.opts.Cwd != "" {
		e.p.Verbosef("Execution working directory: %s", e.opts.Cwd)
	}
	if len(urls) == 0 {
		e.p.Println("Execute: No URLs found.")
		return nil, nil
	}

	results := make([]Result, 0, len(urls))
	for _, u := range urls {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, e.Execute(ctx, u))
	}
	// a cancel during the last command only shows up as that command failing
	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

// Failures counts failed results
func Failures(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Failed() {
			n++
		}
	}
	return n
}

func shell() (name, flag string) {
	if runtime.GOOS == "windows" {
		return "cmd", "/C"
	}
	return "sh", "-c"
}
