package extractor

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xschemadev/urlfetch/ui"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"no urls", "nothing to see here", nil},
		{"single url in prose", "visit http://bar.com/y now", []string{"http://bar.com/y"}},
		{"several in order", "a https://b.org/x?y=1#z then http://a.com end", []string{"https://b.org/x?y=1#z", "http://a.com"}},
		{"duplicates kept", "http://a.com http://a.com", []string{"http://a.com", "http://a.com"}},
		{"wrapped in parens", "see (http://example.com/a) there", []string{"http://example.com/a"}},
		{"schemeless mailto ignored", "write to mailto:me@example.com", nil},
		{"markdown link", "[click](http://foo.com/x)", []string{"http://foo.com/x"}},
		{"markdown link keeps parens", "[text](http://example.com/a(b)c)", []string{"http://example.com/a(b)c"}},
		{"markdown link with query", "[q](https://x.io/?a=1&b=2)", []string{"https://x.io/?a=1&b=2"}},
		{"markdown relative target", "[home](/index.html)", nil},
		{"two markdown links", "[a](http://one.com) [b](http://two.com)", []string{"http://one.com", "http://two.com"}},
		{"markdown inside prose", "read [docs](https://docs.example.com/p) first", []string{"https://docs.example.com/p"}},
	}

	e := New(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Extract(tt.line))
		})
	}
}

func TestMarkdownTarget(t *testing.T) {
	tests := []struct {
		line   string
		want   string
		wantOK bool
	}{
		{"[click](http://foo.com/x)", "http://foo.com/x", true},
		{"[a [nested] label](https://x.org/p)", "https://x.org/p", true},
		{"[text](http://example.com/a(b)c)", "http://example.com/a(b)c", true},
		{"[]()", "", false},
		{"[x](not a url)", "", false},
		{"[x](example.com)", "", false},
		{"prefix [x](http://a.com)", "", false},
		{"[x](http://a.com) suffix", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok := MarkdownTarget(tt.line)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractVerbose(t *testing.T) {
	var buf bytes.Buffer
	e := New(ui.New(&buf, true))

	e.Extract("go to http://a.com and [x](http://b.com)")
	assert.Contains(t, buf.String(), "Found: http://a.com")

	buf.Reset()
	New(ui.New(&buf, false)).Extract("http://a.com")
	assert.Empty(t, buf.String())
}
