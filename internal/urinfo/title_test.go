package urinfo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		body   string
		want   string
		wantOK bool
	}{
		{
			name:   "simple",
			body:   "<html><head><title>Example Domain</title></head><body></body></html>",
			want:   "Example Domain",
			wantOK: true,
		},
		{
			name:   "multiline",
			body:   "<title>this is a title\nwith \n a newline.</title>",
			want:   "this is a title with a newline.",
			wantOK: true,
		},
		{
			name:   "first title wins",
			body:   "<head><title>First</title><title>Second</title></head>",
			want:   "First",
			wantOK: true,
		},
		{
			name:   "nbsp run collapsed",
			body:   "<title>Home&nbsp;&nbsp;&nbsp;Page</title>",
			want:   "Home Page",
			wantOK: true,
		},
		{
			name:   "entities decoded",
			body:   "<title>Fish &amp; Chips</title>",
			want:   "Fish & Chips",
			wantOK: true,
		},
		{name: "no title", body: "<html><body><h1>Hi</h1></body></html>"},
		{name: "empty title", body: "<title></title>"},
		{name: "whitespace title", body: "<title>\n   \n</title>"},
		{name: "not html", body: "\x00\x01binary"},
		{name: "empty body", body: ""},
		{
			name:   "unclosed markup",
			body:   "<html><head><title>Broken</title><body><div><p>",
			want:   "Broken",
			wantOK: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := extractTitle([]byte(tt.body))
			require.Equal(t, tt.wantOK, ok)
			require.Equal(t, tt.want, got)
		})
	}
}
