// Package markdown formats the small inline subset of Markdown allowed in
// gallery captions: **bold**, *italic*, `code` and [links](url). Block
// syntax is not recognised; a caption is one paragraph.
package markdown

import (
	"context"
	"html"
	"io"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

var (
	reBold   = regexp.MustCompile(`\*\*(.+?)\*\*|__(.+?)__`)
	reItalic = regexp.MustCompile(`\*([^*]+)\*|_([^_]+)_`)
	reCode   = regexp.MustCompile("`([^`]+)`")
	// [text](url) or [text](url)^ to open in a new tab.
	reLink = regexp.MustCompile(`\[(.*?)\]\((.*?)\)(\^)?`)
)

// Inline returns a templ.Component that renders s as formatted inline HTML.
func Inline(s string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, Format(s))
		return err
	})
}

// Format escapes s and applies inline formatting. Newlines become <br>.
func Format(s string) string {
	out := html.EscapeString(s)

	// Code spans are parked behind placeholders so emphasis never reaches
	// inside them.
	var spans []string
	out = reCode.ReplaceAllStringFunc(out, func(m string) string {
		inner := reCode.FindStringSubmatch(m)[1]
		spans = append(spans, "<code>"+inner+"</code>")
		return "\x00" + strconv.Itoa(len(spans)-1) + "\x00"
	})

	out = reLink.ReplaceAllStringFunc(out, func(m string) string {
		match := reLink.FindStringSubmatch(m)
		href := SafeURL(match[2])
		if href == "" {
			return match[1]
		}
		attrs := ""
		if match[3] == "^" {
			attrs = ` target="_blank" rel="noopener noreferrer"`
		}
		return `<a href="` + href + `"` + attrs + `>` + match[1] + `</a>`
	})

	out = outsideTags(out, func(seg string) string {
		seg = reBold.ReplaceAllStringFunc(seg, func(m string) string {
			return "<strong>" + firstGroup(reBold, m) + "</strong>"
		})
		return reItalic.ReplaceAllStringFunc(seg, func(m string) string {
			return "<em>" + firstGroup(reItalic, m) + "</em>"
		})
	})

	for i, code := range spans {
		out = strings.Replace(out, "\x00"+strconv.Itoa(i)+"\x00", code, 1)
	}
	return strings.ReplaceAll(out, "\n", "<br>")
}

// firstGroup returns whichever alternative of re matched m.
func firstGroup(re *regexp.Regexp, m string) string {
	for _, g := range re.FindStringSubmatch(m)[1:] {
		if g != "" {
			return g
		}
	}
	return m
}

// outsideTags applies fn to the text between HTML tags only, so emphasis
// never rewrites an href.
func outsideTags(s string, fn func(string) string) string {
	var b strings.Builder
	for len(s) > 0 {
		lt := strings.IndexByte(s, '<')
		if lt < 0 {
			b.WriteString(fn(s))
			break
		}
		b.WriteString(fn(s[:lt]))
		gt := strings.IndexByte(s[lt:], '>')
		if gt < 0 {
			b.WriteString(s[lt:])
			break
		}
		b.WriteString(s[lt : lt+gt+1])
		s = s[lt+gt+1:]
	}
	return b.String()
}

// SafeURL returns raw escaped for an attribute, or "" when its scheme is not
// http, https or mailto. Relative paths and fragments pass.
func SafeURL(raw string) string {
	val := strings.TrimSpace(html.UnescapeString(raw))
	if val == "" {
		return ""
	}
	if strings.HasPrefix(val, "/") || strings.HasPrefix(val, "#") {
		return html.EscapeString(val)
	}
	u, err := url.Parse(val)
	if err != nil {
		return ""
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "mailto":
		return html.EscapeString(val)
	}
	return ""
}
