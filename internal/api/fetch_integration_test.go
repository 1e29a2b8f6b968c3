package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/JakeFAU/urinfo/internal/cache"
	collyfetcher "github.com/JakeFAU/urinfo/internal/fetcher/colly"
	"github.com/JakeFAU/urinfo/internal/urinfo"
)

const examplePage = `<!doctype html>
<html>
<head>
    <title>Example Domain</title>
    <meta charset="utf-8" />
</head>
<body><h1>Example Domain</h1></body>
</html>`

func newExampleUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=UTF-8")
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "secret"})
		if r.Method == http.MethodHead {
			return
		}
		_, _ = w.Write([]byte(examplePage))
	})
	mux.HandleFunc("/newline", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		if r.Method == http.MethodHead {
			return
		}
		_, _ = w.Write([]byte("<title>this is a title\nwith \n a newline.</title>"))
	})
	mux.HandleFunc("/data.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method != http.MethodHead {
			t.Errorf("unexpected %s for non-HTML resource", r.Method)
		}
	})
	mux.HandleFunc("/redirect", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/", http.StatusFound)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newLiveServer() *Server {
	fetcher := collyfetcher.New(collyfetcher.Config{
		UserAgent:    "urinfo-integration-test",
		Timeout:      2 * time.Second,
		MaxRedirects: 10,
	})
	resolver := cache.New(urinfo.NewResolver(fetcher, zap.NewNop()), 16, time.Minute)
	return NewServer(resolver, &fakeIDGen{}, testConfig(), zap.NewNop())
}

func fetchPath(target string) string {
	return "/fetch?uri=" + url.QueryEscape(target)
}

func TestFetchIntegration_ExampleDomain(t *testing.T) {
	t.Parallel()

	upstream := newExampleUpstream(t)
	rec := serve(newLiveServer(), fetchPath(upstream.URL))

	require.Equal(t, http.StatusOK, rec.Code)
	var meta urinfo.Metadata
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &meta))
	require.Equal(t, upstream.URL, meta.URI)
	require.Equal(t, "Example Domain", meta.Title)
	require.Equal(t, "text/html; charset=UTF-8", meta.Headers["content-type"])
	require.NotContains(t, meta.Headers, "set-cookie")
}

func TestFetchIntegration_SanitizesTitle(t *testing.T) {
	t.Parallel()

	upstream := newExampleUpstream(t)
	rec := serve(newLiveServer(), fetchPath(upstream.URL+"/newline"))

	require.Equal(t, http.StatusOK, rec.Code)
	var meta urinfo.Metadata
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &meta))
	require.Equal(t, "this is a title with a newline.", meta.Title)
}

func TestFetchIntegration_NonHTMLHasNoTitle(t *testing.T) {
	t.Parallel()

	upstream := newExampleUpstream(t)
	rec := serve(newLiveServer(), fetchPath(upstream.URL+"/data.json"))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotContains(t, body, "title")
}

func TestFetchIntegration_FollowsRedirectButEchoesInput(t *testing.T) {
	t.Parallel()

	upstream := newExampleUpstream(t)
	target := upstream.URL + "/redirect"
	rec := serve(newLiveServer(), fetchPath(target))

	require.Equal(t, http.StatusOK, rec.Code)
	var meta urinfo.Metadata
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &meta))
	require.Equal(t, target, meta.URI)
	require.Equal(t, "Example Domain", meta.Title)
}

func TestFetchIntegration_UnreachableHost(t *testing.T) {
	t.Parallel()

	closed := httptest.NewServer(http.NotFoundHandler())
	target := closed.URL
	closed.Close()

	rec := serve(newLiveServer(), fetchPath(target))

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "null", rec.Body.String())
}

func TestFetchIntegration_UpstreamErrorStatus(t *testing.T) {
	t.Parallel()

	upstream := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(upstream.Close)

	rec := serve(newLiveServer(), fetchPath(upstream.URL+"/nothing"))

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "null", rec.Body.String())
}
