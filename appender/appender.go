package appender

import (
	"bufio"
	"fmt"
	"os"

	"github.com/xschemadev/urlfetch/logger"
	"github.com/xschemadev/urlfetch/ui"
)

// LineEnding terminates every appended URL
const LineEnding = "\r\n"

type Appender struct {
	p *ui.Printer
}

func New(p *ui.Printer) *Appender {
	if p == nil {
		p = ui.Discard()
	}
	return &Appender{p: p}
}

// Append adds each URL to dest, one per line, creating dest if needed.
// Existing content is never overwritten. An empty list leaves dest untouched.
func (a *Appender) Append(urls []string, dest string) (int, error) {
	if len(urls) == 0 {
		a.p.Println("Append: No URLs found.")
		return 0, nil
	}

	a.p.Verbosef("Appending %s to %s", ui.Plural(len(urls), "URL"), dest)

	f, err := os.OpenFile(dest, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		logger.Error("failed to open append file", "path", dest, "error", err)
		return 0, fmt.Errorf("failed to open %s for appending: %w", dest, err)
	}

	w := bufio.NewWriter(f)
	for _, u := range urls {
		if _, err := w.WriteString(u + LineEnding); err != nil {
			f.Close()
			return 0, fmt.Errorf("failed to write to %s: %w", dest, err)
		}
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return 0, fmt.Errorf("failed to write to %s: %w", dest, err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("failed to close %s: %w", dest, err)
	}

	logger.Debug("appended urls", "path", dest, "count", len(urls))
	return len(urls), nil
}
