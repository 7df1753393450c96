package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/xschemadev/urlfetch/appender"
	"github.com/xschemadev/urlfetch/config"
	"github.com/xschemadev/urlfetch/executor"
	"github.com/xschemadev/urlfetch/extractor"
	"github.com/xschemadev/urlfetch/filter"
	"github.com/xschemadev/urlfetch/logger"
	"github.com/xschemadev/urlfetch/ui"
)

const Name = "urlfetch"

// Summary counts what a run did
type Summary struct {
	Found     int
	Skipped   int
	Executed  int
	Failed    int
	Appended  int
	Truncated bool
	Duration  time.Duration
}

func (s Summary) String() string {
	parts := []string{ui.Plural(s.Found, "URL") + " found"}
	if s.Skipped > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", s.Skipped))
	}
	if s.Executed > 0 {
		executed := fmt.Sprintf("%d executed", s.Executed)
		if s.Failed > 0 {
			executed += fmt.Sprintf(" (%d failed)", s.Failed)
		}
		parts = append(parts, executed)
	}
	if s.Appended > 0 {
		parts = append(parts, fmt.Sprintf("%d appended", s.Appended))
	}
	if s.Truncated {
		parts = append(parts, "input emptied")
	}
	return strings.Join(parts, ", ")
}

// Run scans cfg.Input once: extract, filter, execute, append, then warn or
// truncate. Individual command failures are counted, not returned.
// Returned errors carry a config exit code.
func Run(ctx context.Context, cfg config.Config, p *ui.Printer) (Summary, error) {
	start := time.Now()
	var summary Summary

	if err := config.Validate(cfg); err != nil {
		return summary, config.WithCode(config.ExitUsage, err)
	}

	p.Banner(Name)
	logger.Debug("run started", "input", cfg.Input, "execute", cfg.Execute, "append_to", cfg.AppendTo, "zero", cfg.Zero)

	// Step 1: read and extract
	var found []extractor.Found
	err := p.RunWithSpinner("Scanning "+cfg.Input, func() error {
		var scanErr error
		found, scanErr = extractor.New(p).Scan(ctx, cfg.Input, extractor.Options{Unique: cfg.Unique})
		return scanErr
	})
	if err != nil {
		if errors.Is(err, extractor.ErrInputNotFound) || errors.Is(err, extractor.ErrInputUnreadable) {
			return summary, config.WithCode(config.ExitInputFailed, err)
		}
		return summary, err
	}
	urls := extractor.URLs(found)
	summary.Found = len(urls)

	// Step 2: parameter filtering
	if cfg.FiltersParams() {
		urls, summary.Skipped = filter.New(cfg.Include, cfg.Exclude, p).ApplyAll(urls)
	}

	// Step 3: execute per URL
	if cfg.Execute != "" {
		runner := executor.New(executor.Options{
			Template: cfg.Execute,
			Cwd:      cfg.Cwd,
			Quote:    cfg.Quote,
		}, p)
		results, err := runner.ExecuteAll(ctx, urls)
		summary.Executed = len(results)
		summary.Failed = executor.Failures(results)
		if err != nil {
			return summary, fmt.Errorf("execution interrupted: %w", err)
		}
	}

	// Step 4: append
	if err := ctx.Err(); err != nil {
		return summary, fmt.Errorf("run interrupted: %w", err)
	}
	if cfg.AppendTo != "" {
		n, err := appender.New(p).Append(urls, cfg.AppendTo)
		if err != nil {
			return summary, err
		}
		summary.Appended = n
	}

	// Step 5: warn or truncate
	if !cfg.HasAction() {
		p.WarnMsg("Nothing done with urls, consider using --execute or --appendTo")
	} else if cfg.Zero {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("run interrupted, input left untouched: %w", err)
		}
		p.Println("--zero option used, emptying the input file")
		if err := os.Truncate(cfg.Input, 0); err != nil {
			return summary, fmt.Errorf("failed to empty %s: %w", cfg.Input, err)
		}
		summary.Truncated = true
	}

	summary.Duration = time.Since(start)
	p.SuccessMsg("Done.")
	p.Detail(fmt.Sprintf("%s %s", ui.Primary.Render(summary.String()), ui.Dim.Render(ui.FormatDuration(summary.Duration))))
	logger.Debug("run finished", "found", summary.Found, "executed", summary.Executed, "failed", summary.Failed, "appended", summary.Appended)

	return summary, nil
}
