package urinfo

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "Example Domain", want: "Example Domain"},
		{name: "embedded newlines", in: "this is a title\nwith \n a newline.", want: "this is a title with a newline."},
		{name: "repeated spaces", in: "too    many   spaces", want: "too many spaces"},
		{name: "crlf", in: "line one\r\nline two", want: "line one line two"},
		{name: "tabs and newlines", in: "\n\tIndented\n\t", want: " Indented "},
		{name: "single tab kept", in: "a\tb", want: "a\tb"},
		{name: "non-breaking spaces", in: "Home\u00a0\u00a0\u00a0Page", want: "Home Page"},
		{name: "vertical tabs", in: "a\v\vb", want: "a b"},
		{name: "ideographic spaces", in: "東京\u3000\u3000タワー", want: "東京 タワー"},
		{name: "mixed unicode run", in: "a \u00a0\u2003\tb", want: "a b"},
		{name: "single nbsp kept", in: "a\u00a0b", want: "a\u00a0b"},
		{name: "empty", in: "", want: ""},
		{name: "only newline", in: "\n", want: " "},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}

func FuzzSanitize(f *testing.F) {
	for _, seed := range []string{"", "a  b", "this is a title\nwith \n a newline.", "\r\n\t \n", "x\u00a0\u00a0y", "a\v\u3000\u0085b"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, s string) {
		once := Sanitize(s)
		if strings.Contains(once, "\n") {
			t.Fatalf("Sanitize(%q) = %q still contains a newline", s, once)
		}
		prevSpace := false
		for _, r := range once {
			space := unicode.IsSpace(r)
			if space && prevSpace {
				t.Fatalf("Sanitize(%q) = %q still contains a whitespace run", s, once)
			}
			prevSpace = space
		}
		if twice := Sanitize(once); twice != once {
			t.Fatalf("Sanitize not idempotent for %q: %q then %q", s, once, twice)
		}
	})
}

func TestSanitizeKeepsWordsSeparated(t *testing.T) {
	t.Parallel()

	got := Sanitize("left     right")
	require.Equal(t, []string{"left", "right"}, strings.Fields(got))
	require.Contains(t, got, " ")
}
