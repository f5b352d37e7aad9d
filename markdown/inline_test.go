package markdown

import (
	"bytes"
	"context"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"plain", "hello", "hello"},
		{"escapes", "<b>&", "&lt;b&gt;&amp;"},
		{"bold", "**big** deal", "<strong>big</strong> deal"},
		{"bold underscore", "__big__", "<strong>big</strong>"},
		{"italic", "an *idea*", "an <em>idea</em>"},
		{"nested", "**bold *and* more**", "<strong>bold <em>and</em> more</strong>"},
		{"code keeps stars", "`a*b*c`", "<code>a*b*c</code>"},
		{"newline", "one\ntwo", "one<br>two"},
		{"link", "[p5](https://p5js.org)", `<a href="https://p5js.org">p5</a>`},
		{"link new tab", "[p5](https://p5js.org)^", `<a href="https://p5js.org" target="_blank" rel="noopener noreferrer">p5</a>`},
		{"link underscores untouched", "[x](https://a.org/some_path_here)", `<a href="https://a.org/some_path_here">x</a>`},
		{"unsafe link dropped", "[x](javascript:void)", "x"},
		{"relative link", "[top](#gallery)", `<a href="#gallery">top</a>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.in); got != tt.want {
				t.Errorf("Format(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSafeURL(t *testing.T) {
	tests := map[string]string{
		"https://example.com/?a=1&b=2": "https://example.com/?a=1&amp;b=2",
		"mailto:me@example.com":        "mailto:me@example.com",
		"/local":                       "/local",
		"data:text/html,hi":            "",
		"no-scheme":                    "",
		"  ":                           "",
	}
	for in, want := range tests {
		if got := SafeURL(in); got != want {
			t.Errorf("SafeURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestInlineComponent(t *testing.T) {
	var buf bytes.Buffer
	if err := Inline("*hi*").Render(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "<em>hi</em>" {
		t.Errorf("got %q", buf.String())
	}
}
