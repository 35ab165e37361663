package transport

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/go-playground/validator"
)

var validate = validator.New()

// ListQuery represents the query accepted by the news listing proxy.
type ListQuery struct {
	Page int `validate:"min=1" query:"page"`
}

func (q *ListQuery) Validate() error {
	return validate.Struct(q)
}

// ParseListQuery reads the page parameter, defaulting to the first page when
// it is absent.
func ParseListQuery(values url.Values) (*ListQuery, error) {
	q := &ListQuery{Page: 1}
	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("parse page %q: %w", raw, err)
		}
		q.Page = page
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return q, nil
}

// DetailQuery identifies a single news item and the gallery image to show.
type DetailQuery struct {
	ID    string `validate:"required,max=256"`
	Image int    `validate:"min=0" query:"img"`
}

func (q *DetailQuery) Validate() error {
	return validate.Struct(q)
}

// ParseDetailQuery builds a DetailQuery from a path id and the request query.
// A malformed img parameter selects the first image.
func ParseDetailQuery(id string, values url.Values) (*DetailQuery, error) {
	q := &DetailQuery{ID: id}
	if raw := values.Get("img"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			q.Image = n
		}
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return q, nil
}
