package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ascww/newsportal/cmd/newsportald/internal/upstream"
	"github.com/ascww/newsportal/transport"
)

type proxyError struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

var errInvalidUpstreamJSON = errors.New("upstream returned invalid JSON")

// upstreamStatus is the status the proxy answers with when err came from the
// upstream: the upstream's own status if there was one.
func upstreamStatus(err error) int {
	var se *upstream.StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return http.StatusInternalServerError
}

func writeJSON(rw http.ResponseWriter, status int, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal response: %w", err)
	}
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	_, _ = rw.Write(body)
	return nil
}

func relay(rw http.ResponseWriter, body []byte) {
	rw.Header().Set("Content-Type", "application/json")
	rw.Header().Set("Cache-Control", "no-store")
	_, _ = rw.Write(body)
}

// listNews forwards a listing request to the upstream.
func (e *endpoints) listNews(rw http.ResponseWriter, req *http.Request) error {
	q, err := transport.ParseListQuery(req.URL.Query())
	if err != nil {
		return writeJSON(rw, http.StatusBadRequest, proxyError{Error: "Invalid page parameter", Details: err.Error()})
	}

	body, err := e.Upstream.Raw(req.Context(), "news", url.Values{"page": {strconv.Itoa(q.Page)}})
	if err == nil && !json.Valid(body) {
		err = errInvalidUpstreamJSON
	}
	if err != nil {
		slog.Error("unable to fetch news", "error", err, "page", q.Page)
		return writeJSON(rw, upstreamStatus(err), proxyError{Error: "Failed to fetch news", Details: err.Error()})
	}

	relay(rw, body)
	return nil
}

// newsDetails forwards a single item request, by id or slug, to the upstream.
func (e *endpoints) newsDetails(rw http.ResponseWriter, req *http.Request) error {
	id := req.PathValue("id")

	body, err := e.Upstream.Raw(req.Context(), "news/"+url.PathEscape(id), nil)
	if err == nil && !json.Valid(body) {
		err = errInvalidUpstreamJSON
	}
	if err != nil {
		slog.Error("unable to fetch news details", "error", err, "id", id)
		return writeJSON(rw, upstreamStatus(err), proxyError{Error: "Failed to fetch news details"})
	}

	relay(rw, body)
	return nil
}
