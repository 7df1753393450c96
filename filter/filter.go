package filter

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/xschemadev/urlfetch/logger"
	"github.com/xschemadev/urlfetch/ui"
)

var ErrInvalidURL = errors.New("invalid URL")

// Names is a set of query parameter names.
type Names map[string]struct{}

func NewNames(names ...string) Names {
	set := make(Names, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// ParseNames splits a comma-separated list, trimming blanks and dropping empty entries.
func ParseNames(list string) []string {
	var names []string
	for _, n := range strings.Split(list, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}

func (n Names) Has(name string) bool {
	_, ok := n[name]
	return ok
}

// Sorted returns the names in sorted order for deterministic output
func (n Names) Sorted() []string {
	keys := make([]string, 0, len(n))
	for k := range n {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Apply drops query parameters from rawURL. When include is non-empty only
// names in it survive; otherwise names in exclude are dropped. Every
// parameter sharing a dropped name goes, and the rest keep their order and
// encoding.
func Apply(rawURL string, include, exclude Names) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return "", fmt.Errorf("%w: %q is not an absolute URL", ErrInvalidURL, rawURL)
	}

	if u.RawQuery == "" {
		return u.String(), nil
	}

	var kept []string
	for _, pair := range strings.Split(u.RawQuery, "&") {
		if pair == "" {
			continue
		}
		if drop(paramName(pair), include, exclude) {
			continue
		}
		kept = append(kept, pair)
	}

	u.RawQuery = strings.Join(kept, "&")
	u.ForceQuery = false
	return u.String(), nil
}

func drop(name string, include, exclude Names) bool {
	if len(include) > 0 {
		return !include.Has(name)
	}
	return exclude.Has(name)
}

// paramName returns the decoded name of a raw "name=value" pair.
func paramName(pair string) string {
	name, _, _ := strings.Cut(pair, "=")
	if decoded, err := url.QueryUnescape(name); err == nil {
		return decoded
	}
	return name
}

// Filter applies one include/exclude policy to a batch of URLs.
type Filter struct {
	Include Names
	Exclude Names
	p       *ui.Printer
}

func New(include, exclude []string, p *ui.Printer) *Filter {
	if p == nil {
		p = ui.Discard()
	}
	return &Filter{
		Include: NewNames(include...),
		Exclude: NewNames(exclude...),
		p:       p,
	}
}

// Enabled reports whether there is anything to filter by.
func (f *Filter) Enabled() bool {
	return len(f.Include) > 0 || len(f.Exclude) > 0
}

// Apply filters a single URL, printing "original -> transformed" in verbose mode.
func (f *Filter) Apply(rawURL string) (string, error) {
	out, err := Apply(rawURL, f.Include, f.Exclude)
	if err != nil {
		return "", err
	}
	f.p.Verbosef("%s -> %s", rawURL, out)
	return out, nil
}

// ApplyAll filters urls in order. Invalid URLs are reported and skipped;
// skipped counts them.
func (f *Filter) ApplyAll(urls []string) (filtered []string, skipped int) {
	if !f.Enabled() {
		return urls, 0
	}

	logger.Debug("filtering parameters", "include", f.Include.Sorted(), "exclude", f.Exclude.Sorted(), "urls", len(urls))

	filtered = make([]string, 0, len(urls))
	for _, raw := range urls {
		out, err := f.Apply(raw)
		if err != nil {
			f.p.WarnMsg(fmt.Sprintf("Skipping %s: %v", raw, err))
			logger.Warn("url skipped", "url", raw, "error", err)
			skipped++
			continue
		}
		filtered = append(filtered, out)
	}
	return filtered, skipped
}
