package http

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ascww/newsportal/cmd/newsportald/internal/config"
	"github.com/ascww/newsportal/cmd/newsportald/internal/upstream"
	"github.com/ascww/newsportal/cmd/newsportald/internal/views"
	"github.com/ascww/newsportal/feed"
)

// fakeUpstream serves a listing of n items and records the pages requested.
type fakeUpstream struct {
	mu     sync.Mutex
	status int
	n      int
	pages  []string
}

func (f *fakeUpstream) setStatus(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = status
}

func (f *fakeUpstream) requested() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.pages...)
}

func (f *fakeUpstream) ServeHTTP(rw http.ResponseWriter, req *http.Request) {
	f.mu.Lock()
	status := f.status
	f.pages = append(f.pages, req.URL.Query().Get("page"))
	f.mu.Unlock()

	if status != 0 {
		rw.WriteHeader(status)
		_, _ = rw.Write([]byte(`{"message":"nope"}`))
		return
	}

	switch {
	case req.URL.Path == "/api/news":
		var items []string
		for i := 1; i <= f.n; i++ {
			items = append(items, fmt.Sprintf(`{"id":%d,"title":"خبر %d","slug":"news-%d","description":"<p>نص</p>","created_at":"2024-01-%02dT10:00:00.000000Z","news_images":[]}`, i, i, i, i))
		}
		_, _ = rw.Write([]byte("[" + strings.Join(items, ",") + "]"))
	case req.URL.Path == "/api/news/news-1":
		_, _ = rw.Write([]byte(`[{"id":1,"title":"خبر 1","slug":"news-1","description":"<p>نص الخبر</p>","created_at":"2024-01-01T10:00:00.000000Z","news_images":[{"path":"a.jpg"},{"path":"b.jpg"}]}]`))
	case req.URL.Path == "/api/news/empty":
		_, _ = rw.Write([]byte(`[]`))
	case req.URL.Path == "/api/news/broken":
		_, _ = rw.Write([]byte(`<html>`))
	default:
		rw.WriteHeader(http.StatusNotFound)
	}
}

type testServer struct {
	handler  http.Handler
	upstream *fakeUpstream
	registry *views.Registry
}

func newTestServer(t *testing.T, n int) *testServer {
	t.Helper()

	up := &fakeUpstream{n: n}
	srv := httptest.NewServer(up)
	t.Cleanup(srv.Close)

	conf := &config.Config{
		UpstreamURL:     srv.URL + "/api",
		ImageBaseURL:    "https://img.example/",
		UpstreamTimeout: time.Second,
		UserAgent:       "newsportal-test",
		ViewTTL:         time.Minute,
		SiteURL:         "https://news.example",
		Location:        time.UTC,
	}

	client := upstream.New(conf)
	registry := views.New(client, conf.ViewTTL, feed.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	return &testServer{
		handler:  NewHandler(conf, client, registry),
		upstream: up,
		registry: registry,
	}
}

func (s *testServer) do(method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestListNewsProxy(t *testing.T) {
	s := newTestServer(t, 2)

	rec := s.do(http.MethodGet, "/api/news")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("Content-Type = %q; want application/json", ct)
	}
	var items []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil || len(items) != 2 {
		t.Fatalf("relayed body %s; want two items (err %v)", rec.Body.String(), err)
	}

	s.do(http.MethodGet, "/api/news?page=3")
	if got := s.upstream.requested(); len(got) != 2 || got[0] != "1" || got[1] != "3" {
		t.Fatalf("upstream pages requested = %v; want [1 3]", got)
	}
}

func TestListNewsProxyInvalidPage(t *testing.T) {
	s := newTestServer(t, 2)

	for _, target := range []string{"/api/news?page=0", "/api/news?page=x"} {
		rec := s.do(http.MethodGet, target)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("GET %s status = %d; want 400", target, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Invalid page parameter") {
			t.Fatalf("GET %s body = %s", target, rec.Body.String())
		}
	}
	if len(s.upstream.requested()) != 0 {
		t.Fatalf("invalid requests reached the upstream")
	}
}

func TestProxyPropagatesUpstreamStatus(t *testing.T) {
	s := newTestServer(t, 2)
	s.upstream.setStatus(http.StatusTooManyRequests)

	rec := s.do(http.MethodGet, "/api/news?page=1")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d; want 429", rec.Code)
	}

	var body proxyError
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Error != "Failed to fetch news" || body.Details == "" {
		t.Fatalf("error body = %+v", body)
	}

	rec = s.do(http.MethodGet, "/api/news/news-1")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("detail status = %d; want 429", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"error":"Failed to fetch news details"`) {
		t.Fatalf("detail error body = %s", rec.Body.String())
	}
}

func TestProxyUpstreamUnreachable(t *testing.T) {
	s := newTestServer(t, 2)

	conf := &config.Config{UpstreamURL: "http://127.0.0.1:1", UpstreamTimeout: time.Second, UserAgent: "x"}
	handler := NewHandler(conf, upstream.New(conf), s.registry)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/news", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d; want 500", rec.Code)
	}
}

func TestNewsDetailsProxy(t *testing.T) {
	s := newTestServer(t, 2)

	rec := s.do(http.MethodGet, "/api/news/news-1")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"slug":"news-1"`) {
		t.Fatalf("GET /api/news/news-1 = %d %s", rec.Code, rec.Body.String())
	}

	if rec := s.do(http.MethodGet, "/api/news/missing"); rec.Code != http.StatusNotFound {
		t.Fatalf("GET /api/news/missing status = %d; want 404", rec.Code)
	}

	if rec := s.do(http.MethodGet, "/api/news/broken"); rec.Code != http.StatusInternalServerError {
		t.Fatalf("GET /api/news/broken status = %d; want 500", rec.Code)
	}
}

var moreURLPattern = regexp.MustCompile(`data-more-url="(/views/([^/]+)/more)"`)

func TestHomeAndRevealMore(t *testing.T) {
	s := newTestServer(t, 5)

	rec := s.do(http.MethodGet, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET / status = %d; want 200", rec.Code)
	}
	page := rec.Body.String()
	if got := strings.Count(page, `class="card"`); got != feed.ChunkSize {
		t.Fatalf("home page shows %d cards; want %d", got, feed.ChunkSize)
	}
	// newest first
	if strings.Index(page, "خبر 5") > strings.Index(page, "خبر 3") {
		t.Fatalf("cards not ordered newest first")
	}

	m := moreURLPattern.FindStringSubmatch(page)
	if m == nil {
		t.Fatalf("home page has no sentinel")
	}
	moreURL, viewID := m[1], m[2]

	rec = s.do(http.MethodGet, moreURL)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET %s status = %d; want 200", moreURL, rec.Code)
	}
	fragment := rec.Body.String()
	if got := strings.Count(fragment, `class="card"`); got != 2 {
		t.Fatalf("fragment has %d cards; want 2", got)
	}
	if !strings.Contains(fragment, "تم تحميل جميع الأخبار") {
		t.Fatalf("fragment does not mark the listing as exhausted")
	}

	rec = s.do(http.MethodGet, moreURL)
	if got := strings.Count(rec.Body.String(), `class="card"`); got != 0 {
		t.Fatalf("reveal past the end returned %d cards; want 0", got)
	}

	rec = s.do(http.MethodGet, "/?view="+viewID)
	if got := strings.Count(rec.Body.String(), `class="card"`); got != 5 {
		t.Fatalf("re-rendered view shows %d cards; want 5", got)
	}

	if got := len(s.upstream.requested()); got != 1 {
		t.Fatalf("upstream called %d times; want 1", got)
	}
}

func TestRevealMoreUnknownView(t *testing.T) {
	s := newTestServer(t, 5)
	if rec := s.do(http.MethodGet, "/views/unknown/more"); rec.Code != http.StatusGone {
		t.Fatalf("status = %d; want 410", rec.Code)
	}
}

func TestRetry(t *testing.T) {
	s := newTestServer(t, 4)
	s.upstream.setStatus(http.StatusTooManyRequests)

	rec := s.do(http.MethodGet, "/")
	page := rec.Body.String()
	if !strings.Contains(page, feed.MessageRateLimited) {
		t.Fatalf("home page does not show the rate limit message")
	}

	m := regexp.MustCompile(`action="/views/([^/]+)/retry"`).FindStringSubmatch(page)
	if m == nil {
		t.Fatalf("home page has no retry form")
	}
	viewID := m[1]

	s.upstream.setStatus(0)

	rec = s.do(http.MethodPost, "/views/"+viewID+"/retry")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("retry status = %d; want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/?view="+viewID {
		t.Fatalf("retry redirected to %q", loc)
	}

	rec = s.do(http.MethodGet, "/?view="+viewID)
	if got := strings.Count(rec.Body.String(), `class="card"`); got != feed.ChunkSize {
		t.Fatalf("view after retry shows %d cards; want %d", got, feed.ChunkSize)
	}
}

func TestNewsPage(t *testing.T) {
	s := newTestServer(t, 1)

	rec := s.do(http.MethodGet, "/news/news-1?img=1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"<title>خبر 1</title>", `src="https://img.example/b.jpg"`, "https://news.example/news/news-1"} {
		if !strings.Contains(body, want) {
			t.Fatalf("detail page missing %q", want)
		}
	}

	for _, target := range []string{"/news/empty", "/news/missing"} {
		rec := s.do(http.MethodGet, target)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("GET %s status = %d; want 404", target, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "الخبر غير موجود") {
			t.Fatalf("GET %s does not show the not found message", target)
		}
	}

	s.upstream.setStatus(http.StatusInternalServerError)
	rec = s.do(http.MethodGet, "/news/news-1")
	if rec.Code != http.StatusBadGateway || !strings.Contains(rec.Body.String(), "حدث خطأ أثناء تحميل الخبر") {
		t.Fatalf("upstream failure rendered %d", rec.Code)
	}
}

func TestHealthzAndRequestID(t *testing.T) {
	s := newTestServer(t, 0)

	rec := s.do(http.MethodGet, "/healthz")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"status":"healthy"`) {
		t.Fatalf("GET /healthz = %d %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatalf("response has no request id")
	}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc")
	rec = httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "abc" {
		t.Fatalf("X-Request-ID = %q; want abc", got)
	}
}

func TestStaticLogo(t *testing.T) {
	s := newTestServer(t, 0)
	rec := s.do(http.MethodGet, "/static/logo.svg")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "<svg") {
		t.Fatalf("GET /static/logo.svg = %d", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, 0)
	s.do(http.MethodGet, "/healthz")

	rec := s.do(http.MethodGet, "/metrics")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "newsportal_http_requests_total") {
		t.Fatalf("GET /metrics = %d", rec.Code)
	}
}

func TestOriginIgnoresForwardedHeadersByDefault(t *testing.T) {
	cases := []struct {
		name       string
		trustProxy bool
		want       string
		notWant    string
	}{
		{name: "untrusted", trustProxy: false, want: "http://portal.local/news/news-1", notWant: "evil.example"},
		{name: "trusted", trustProxy: true, want: "https://evil.example/news/news-1"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			up := &fakeUpstream{n: 1}
			srv := httptest.NewServer(up)
			defer srv.Close()

			conf := &config.Config{
				UpstreamURL:     srv.URL + "/api",
				ImageBaseURL:    "https://img.example/",
				UpstreamTimeout: time.Second,
				UserAgent:       "newsportal-test",
				ViewTTL:         time.Minute,
				TrustProxy:      c.trustProxy,
				Location:        time.UTC,
			}
			client := upstream.New(conf)
			handler := NewHandler(conf, client, views.New(client, conf.ViewTTL))

			req := httptest.NewRequest(http.MethodGet, "http://portal.local/news/news-1", nil)
			req.Header.Set("X-Forwarded-Host", "evil.example")
			req.Header.Set("X-Forwarded-Proto", "https")
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			body := rec.Body.String()
			if !strings.Contains(body, `property="og:url" content="`+c.want+`"`) {
				t.Fatalf("og:url is not %q", c.want)
			}
			if c.notWant != "" && strings.Contains(body, c.notWant) {
				t.Fatalf("page contains forwarded host %q", c.notWant)
			}
		})
	}
}

// headerCounter counts WriteHeader calls.
type headerCounter struct {
	*httptest.ResponseRecorder
	calls int
}

func (h *headerCounter) WriteHeader(code int) {
	h.calls++
	h.ResponseRecorder.WriteHeader(code)
}

func TestHandlerErrorAfterWriteKeepsStatus(t *testing.T) {
	e := &endpoints{}
	mux := http.NewServeMux()
	e.handle(mux, "GET /partial", "partial", func(rw http.ResponseWriter, _ *http.Request) error {
		rw.WriteHeader(http.StatusOK)
		return fmt.Errorf("render page: broken pipe")
	})
	e.handle(mux, "GET /failed", "failed", func(http.ResponseWriter, *http.Request) error {
		return fmt.Errorf("nothing written")
	})

	rec := &headerCounter{ResponseRecorder: httptest.NewRecorder()}
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/partial", nil))
	if rec.calls != 1 || rec.Code != http.StatusOK {
		t.Fatalf("WriteHeader called %d times, status %d; want once with 200", rec.calls, rec.Code)
	}

	rec = &headerCounter{ResponseRecorder: httptest.NewRecorder()}
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/failed", nil))
	if rec.calls != 1 || rec.Code != http.StatusInternalServerError {
		t.Fatalf("WriteHeader called %d times, status %d; want once with 500", rec.calls, rec.Code)
	}
}
