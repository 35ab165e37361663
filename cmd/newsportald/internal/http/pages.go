package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/ascww/newsportal/cmd/newsportald/internal/metrics"
	"github.com/ascww/newsportal/cmd/newsportald/internal/pages"
	"github.com/ascww/newsportal/cmd/newsportald/internal/upstream"
	"github.com/ascww/newsportal/transport"
	g "github.com/maragudk/gomponents"
)

func (e *endpoints) site(req *http.Request) pages.Site {
	return pages.Site{
		ImageBaseURL: e.Config.ImageBaseURL,
		Origin:       e.origin(req),
		Location:     e.Config.Location,
	}
}

// origin is the configured site URL, or one derived from the request.
// Forwarding headers are only honoured when TrustProxy is set.
func (e *endpoints) origin(req *http.Request) string {
	if e.Config.SiteURL != "" {
		return e.Config.SiteURL
	}

	scheme := "http"
	if req.TLS != nil {
		scheme = "https"
	}
	host := req.Host

	if e.Config.TrustProxy {
		if strings.EqualFold(req.Header.Get("X-Forwarded-Proto"), "https") {
			scheme = "https"
		}
		if fwd := req.Header.Get("X-Forwarded-Host"); fwd != "" {
			host = fwd
		}
	}

	return scheme + "://" + host
}

func renderHTML(rw http.ResponseWriter, status int, n g.Node) error {
	rw.Header().Set("Content-Type", "text/html; charset=utf-8")
	rw.WriteHeader(status)
	if err := pages.Render(rw, n); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

// home renders the listing. An existing view is re-rendered when its id is
// given, otherwise a new one is opened and fetched.
func (e *endpoints) home(rw http.ResponseWriter, req *http.Request) error {
	viewID := req.URL.Query().Get("view")

	controller, ok := e.Views.Get(viewID)
	if !ok {
		viewID, controller = e.Views.Open(context.WithoutCancel(req.Context()))
	}

	rw.Header().Set("Cache-Control", "no-store")
	return renderHTML(rw, http.StatusOK, pages.HomePage(e.site(req), viewID, controller.Snapshot()))
}

// revealMore is requested by the browser when the sentinel comes into view.
func (e *endpoints) revealMore(rw http.ResponseWriter, req *http.Request) error {
	viewID := req.PathValue("view")

	controller, ok := e.Views.Get(viewID)
	if !ok {
		rw.WriteHeader(http.StatusGone)
		return nil
	}

	items := controller.OnApproachingEnd()
	metrics.NewsItemsRevealed.Add(float64(len(items)))

	rw.Header().Set("Cache-Control", "no-store")
	return renderHTML(rw, http.StatusOK, pages.MoreFragment(e.site(req), viewID, items, controller.Snapshot()))
}

func (e *endpoints) retry(rw http.ResponseWriter, req *http.Request) error {
	viewID := req.PathValue("view")

	controller, ok := e.Views.Get(viewID)
	if !ok {
		http.Redirect(rw, req, "/", http.StatusSeeOther)
		return nil
	}

	controller.Retry(context.WithoutCancel(req.Context()))

	http.Redirect(rw, req, "/?view="+url.QueryEscape(viewID), http.StatusSeeOther)
	return nil
}

func (e *endpoints) newsPage(rw http.ResponseWriter, req *http.Request) error {
	q, err := transport.ParseDetailQuery(req.PathValue("id"), req.URL.Query())
	if err != nil {
		return renderHTML(rw, http.StatusNotFound, pages.NewsErrorPage(http.StatusNotFound))
	}

	item, err := e.Upstream.GetNews(req.Context(), q.ID)
	if err != nil {
		status := http.StatusBadGateway
		var se *upstream.StatusError
		if errors.Is(err, upstream.ErrNotFound) || (errors.As(err, &se) && se.Code == http.StatusNotFound) {
			status = http.StatusNotFound
		}
		slog.Warn("unable to load news item", "id", q.ID, "error", err)
		return renderHTML(rw, status, pages.NewsErrorPage(status))
	}

	return renderHTML(rw, http.StatusOK, pages.NewsPage(e.site(req), item, q.Image))
}
