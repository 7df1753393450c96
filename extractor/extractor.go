package extractor

import (
	"net/url"
	"regexp"
	"strings"

	"mvdan.cc/xurls/v2"

	"github.com/xschemadev/urlfetch/ui"
)

// schemeAuthority accepts any scheme followed by "://", so bare
// "mailto:" style matches are left out.
const schemeAuthority = `[a-zA-Z][a-zA-Z0-9.+\-]*://`

var grammar = mustGrammar()

func mustGrammar() *regexp.Regexp {
	re, err := xurls.StrictMatchingScheme(schemeAuthority)
	if err != nil {
		panic(err)
	}
	return re
}

// Found is a URL together with the input line it came from.
type Found struct {
	URL  string
	Line int
}

// Extractor pulls URLs out of lines of free text.
type Extractor struct {
	p *ui.Printer
}

func New(p *ui.Printer) *Extractor {
	if p == nil {
		p = ui.Discard()
	}
	return &Extractor{p: p}
}

// Extract returns the URLs in line in order of occurrence.
//
// A line that is exactly one Markdown link, "[text](url)", yields the link
// target verbatim, parentheses included. Everything else goes through the
// URL grammar.
func (e *Extractor) Extract(line string) []string {
	if target, ok := MarkdownTarget(line); ok {
		e.p.Verbosef("Found: %s", target)
		return []string{target}
	}

	urls := grammar.FindAllString(line, -1)
	for _, u := range urls {
		e.p.Verbosef("Found: %s", u)
	}
	return urls
}

// MarkdownTarget reports the link target when line is a single link of the
// shape "[text](url)" and the target is an absolute URL with a host.
// The target is the text between the "](" and the final ")".
func MarkdownTarget(line string) (string, bool) {
	if !strings.HasPrefix(line, "[") || !strings.HasSuffix(line, ")") {
		return "", false
	}

	if strings.Count(line, "](") != 1 {
		return "", false
	}
	idx := strings.LastIndex(line, "](")
	if idx < 0 {
		return "", false
	}
	start, end := idx+2, len(line)-1
	if start >= end {
		return "", false
	}

	target := line[start:end]
	if strings.ContainsAny(target, " \t") {
		return "", false
	}
	u, err := url.Parse(target)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", false
	}
	return target, true
}
