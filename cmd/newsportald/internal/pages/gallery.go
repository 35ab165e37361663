package pages

import (
	"strconv"

	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"
)

// Gallery is the image viewer state of a detail page. Navigation wraps at both
// ends.
type Gallery struct {
	Images []string
	Active int
}

// NewGallery selects active, falling back to the first image when active is
// out of range.
func NewGallery(images []string, active int) Gallery {
	if active < 0 || active >= len(images) {
		active = 0
	}
	return Gallery{Images: images, Active: active}
}

func (gl Gallery) Current() string {
	if len(gl.Images) == 0 {
		return LogoPath
	}
	return gl.Images[gl.Active]
}

func (gl Gallery) Prev() int {
	if len(gl.Images) == 0 {
		return 0
	}
	return (gl.Active - 1 + len(gl.Images)) % len(gl.Images)
}

func (gl Gallery) Next() int {
	if len(gl.Images) == 0 {
		return 0
	}
	return (gl.Active + 1) % len(gl.Images)
}

func galleryHref(i int) string {
	return "?img=" + strconv.Itoa(i) + "#gallery"
}

func galleryComponent(gl Gallery, title string) g.Node {
	multiple := len(gl.Images) > 1

	return Div(ID("gallery"), Class("gallery"),
		Div(Class("gallery-stage"),
			Img(
				g.Attr("src", gl.Current()),
				g.Attr("alt", title),
				g.If(len(gl.Images) != 0, g.Attr("onerror", imageFallback)),
			),
			g.If(multiple, g.Group([]g.Node{
				A(Class("gallery-nav gallery-prev"), g.Attr("href", galleryHref(gl.Prev())), g.Attr("aria-label", "الصورة السابقة"), g.Text("›")),
				A(Class("gallery-nav gallery-next"), g.Attr("href", galleryHref(gl.Next())), g.Attr("aria-label", "الصورة التالية"), g.Text("‹")),
				Span(Class("gallery-counter"), g.Textf("%d / %d", gl.Active+1, len(gl.Images))),
			})),
		),
		g.If(multiple, Div(Class("gallery-thumbs"),
			g.Group(thumbnails(gl)),
		)),
	)
}

func thumbnails(gl Gallery) []g.Node {
	nodes := make([]g.Node, len(gl.Images))
	for i, src := range gl.Images {
		cls := "gallery-thumb"
		if i == gl.Active {
			cls += " active"
		}
		nodes[i] = A(Class(cls), g.Attr("href", galleryHref(i)),
			Img(g.Attr("src", src), g.Attr("alt", ""), g.Attr("loading", "lazy"), g.Attr("onerror", imageFallback)),
		)
	}
	return nodes
}
