package models

import (
	"strings"
	"time"
)

// NewsImage is an image attached to a news item. Path is relative to the
// image base URL.
type NewsImage struct {
	ID        int    `json:"id"`
	NewsID    int    `json:"news_id"`
	Name      string `json:"name"`
	Path      string `json:"path"`
	MainImage int    `json:"main_image"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func (i NewsImage) IsMain() bool {
	return i.MainImage == 1
}

// URL joins the image path onto base. No separator is inserted.
func (i NewsImage) URL(base string) string {
	return base + i.Path
}

type NewsItem struct {
	ID          int         `json:"id"`
	Title       string      `json:"title"`
	Slug        string      `json:"slug"`
	Active      int         `json:"active"`
	Home        int         `json:"home"`
	UserID      int         `json:"user_id"`
	Description string      `json:"description"`
	CreatedAt   string      `json:"created_at"`
	UpdatedAt   string      `json:"updated_at"`
	Images      []NewsImage `json:"news_images"`
}

// Thumbnail returns the image marked as main, falling back to the first
// image. ok is false when the item has no images.
func (n *NewsItem) Thumbnail() (img NewsImage, ok bool) {
	for _, x := range n.Images {
		if x.IsMain() {
			return x, true
		}
	}
	if len(n.Images) != 0 {
		return n.Images[0], true
	}
	return NewsImage{}, false
}

func (n *NewsItem) ThumbnailURL(base, placeholder string) string {
	img, ok := n.Thumbnail()
	if !ok {
		return placeholder
	}
	return img.URL(base)
}

// ImageURLs returns display URLs for every image in upstream order.
func (n *NewsItem) ImageURLs(base string) []string {
	res := make([]string, len(n.Images))
	for i, img := range n.Images {
		res[i] = img.URL(base)
	}
	return res
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000000Z",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseCreatedTime parses CreatedAt. ok is false if the timestamp is empty or
// in an unknown layout.
func (n *NewsItem) ParseCreatedTime() (t time.Time, ok bool) {
	s := strings.TrimSpace(n.CreatedAt)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CreatedTime is the item's creation time, or the Unix epoch when it cannot be
// determined.
func (n *NewsItem) CreatedTime() time.Time {
	if t, ok := n.ParseCreatedTime(); ok {
		return t
	}
	return time.Unix(0, 0).UTC()
}
