package urinfo

import (
	"net/http"
	"strings"
)

const (
	headerContentType = "content-type"
	headerSetCookie   = "set-cookie"
)

// NormalizeHeaders lower-cases header names and joins repeated values with ", ".
// Set-Cookie is never included.
func NormalizeHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for name, values := range h {
		key := strings.ToLower(name)
		if key == headerSetCookie {
			continue
		}
		if existing, ok := out[key]; ok {
			values = append([]string{existing}, values...)
		}
		out[key] = strings.Join(values, ", ")
	}
	return out
}

// isHTML reports whether the normalized headers declare an HTML body.
func isHTML(headers map[string]string) bool {
	contentType, ok := headers[headerContentType]
	if !ok {
		return false
	}
	return strings.Contains(contentType, "html")
}
