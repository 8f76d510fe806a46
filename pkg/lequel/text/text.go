// Package text acquires input text as an ordered list of lines.
package text

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// DefaultMaxFileBytes caps how much of a file FromFile reads.
const DefaultMaxFileBytes = 10_000_000

// Text is an ordered sequence of lines without their line terminators.
type Text []string

// FromString splits s on '\n' and strips a '\r' paired with each '\n'.
// The segment after the last '\n' is always kept, even when empty.
func FromString(s string) Text {
	var t Text
	for {
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			break
		}
		line := s[:i]
		line = strings.TrimSuffix(line, "\r")
		t = append(t, line)
		s = s[i+1:]
	}
	return append(t, s)
}

// FromReader reads at most limit bytes from r and splits them into lines.
// A non-positive limit reads everything.
func FromReader(r io.Reader, limit int64) (Text, error) {
	if limit > 0 {
		r = io.LimitReader(r, limit)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return FromString(string(data)), nil
}

// FromFile loads the first DefaultMaxFileBytes of path as text.
func FromFile(path string) (Text, error) {
	return FromFileLimit(path, DefaultMaxFileBytes)
}

// FromFileLimit loads at most limit bytes of path as text.
func FromFileLimit(path string, limit int64) (Text, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	t, err := FromReader(f, limit)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return t, nil
}

// FromHTMLLimit extracts the visible text of at most limit bytes of HTML.
// A non-positive limit reads everything.
func FromHTMLLimit(r io.Reader, limit int64) (Text, error) {
	if limit > 0 {
		r = io.LimitReader(r, limit)
	}
	return FromHTML(r)
}

// FromHTML extracts the visible text of an HTML document, one line per
// text node. Script and style contents are skipped.
func FromHTML(r io.Reader) (Text, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var t Text
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "template":
				return
			}
		}
		if n.Type == html.TextNode {
			for _, line := range FromString(n.Data) {
				line = strings.TrimSpace(line)
				if line != "" {
					t = append(t, line)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return t, nil
}

// NFC returns a copy of t with every line in Unicode normalization form C,
// so that a base letter plus combining accent counts as one character.
func NFC(t Text) Text {
	out := make(Text, len(t))
	for i, line := range t {
		out[i] = norm.NFC.String(line)
	}
	return out
}
