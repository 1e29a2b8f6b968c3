// Package cmd defines and implements the CLI commands for the urinfo executable.
//
// Architecture overview:
//   - HTTP API: internal/api.Server exposes /fetch plus health, readiness, metrics, robots.txt and a landing
//     page. Every response carries Cache-Control: public, max-age=N, and every failure is a 404 with body null.
//   - Resolution: internal/urinfo.Resolver sends a HEAD request, normalizes the response headers, and for HTML
//     documents follows up with a GET to extract and sanitize the <title>. Transport is the Colly-based fetcher in
//     internal/fetcher/colly, which caps redirects, body size, and request duration.
//   - Caching: when cache.enabled is set, successful results are kept in an expirable LRU (internal/cache)
//     keyed by the raw URI. It is off by default so every call resolves fresh.
//   - Configuration & plumbing: Viper populates config from env/files (URINFO_ prefix, PORT and DEBUG honored);
//     zap provides structured logging; Prometheus metrics are exported via the metrics middleware and /metrics.
//
// Quick checklist:
//   - Run locally: go run . serve --config config.yaml (or rely solely on env overrides).
//   - One-shot lookup: go run . resolve https://example.com
package cmd
