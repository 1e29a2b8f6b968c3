// Package urinfo resolves metadata (response headers and HTML title) for a single remote URL.
package urinfo
