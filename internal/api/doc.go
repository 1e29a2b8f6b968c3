// Package api hosts the HTTP server, middleware, and handlers. Notable routes:
//   - GET /fetch?uri=... resolves metadata for one URL; anything that cannot be
//     resolved answers 404 with a JSON null body.
//   - GET /healthz / readyz for liveness and readiness probes.
//   - GET /metrics for Prometheus scraping.
//   - GET / and /robots.txt serve embedded static files.
package api
