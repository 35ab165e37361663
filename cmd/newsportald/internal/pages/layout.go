// Package pages renders the portal's HTML.
package pages

import (
	"io"
	"strconv"
	"time"

	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"
)

const (
	SiteName        = "شركة مياه الشرب والصرف الصحى بأسيوط"
	SiteDescription = "تابع آخر أخبار وفعاليات شركة مياه الشرب والصرف الصحى بأسيوط والوادى الجديد"
	officialSiteURL = "https://ascww.org/"
	imageFallback   = "this.onerror=null;this.src='" + LogoPath + "'"
)

// Site carries the per-request settings every page needs.
type Site struct {
	ImageBaseURL string
	// Origin is the absolute scheme and host used for share links and
	// OpenGraph URLs.
	Origin   string
	Location *time.Location
}

func (s Site) location() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}

func (s Site) absolute(path string) string {
	return s.Origin + path
}

// Render writes a node to w.
func Render(w io.Writer, n g.Node) error {
	return n.Render(w)
}

func document(meta Metadata, body ...g.Node) g.Node {
	return Doctype(
		HTML(g.Attr("lang", "ar"), g.Attr("dir", "rtl"),
			Head(
				Meta(g.Attr("charset", "utf-8")),
				Meta(g.Attr("name", "viewport"), g.Attr("content", "width=device-width, initial-scale=1")),
				metaTags(meta),
				Link(g.Attr("rel", "preconnect"), g.Attr("href", "https://fonts.googleapis.com")),
				Link(g.Attr("rel", "preconnect"), g.Attr("href", "https://fonts.gstatic.com"), g.Attr("crossorigin", "anonymous")),
				Link(g.Attr("rel", "stylesheet"), g.Attr("href", "https://fonts.googleapis.com/css2?family=Cairo:wght@400;600;700&display=swap")),
				Link(g.Attr("rel", "icon"), g.Attr("href", LogoPath)),
				StyleEl(g.Raw(stylesheet)),
			),
			Body(
				Div(Class("page"),
					header(),
					Main(Class("container"), g.Group(body)),
					footer(),
				),
			),
		),
	)
}

func header() g.Node {
	return Header(Class("site-header"),
		Div(Class("container header-inner"),
			A(g.Attr("href", "/"), Class("logo"),
				Img(g.Attr("src", LogoPath), g.Attr("alt", SiteName)),
			),
			Nav(Class("header-links"),
				A(g.Attr("href", "/"), Class("home-link"), g.Text("الرئيسية")),
				A(
					g.Attr("href", officialSiteURL),
					g.Attr("target", "_blank"),
					g.Attr("rel", "noopener noreferrer"),
					Class("official-link"),
					g.Text("الموقع الرسمي"),
				),
			),
		),
	)
}

func footer() g.Node {
	return Footer(Class("site-footer"),
		P(g.Text("جميع الحقوق محفوظة © "+strconv.Itoa(time.Now().Year())+" شركة مياه الشرب والصرف الصحى بأسيوط والوادى الجديد")),
	)
}

const stylesheet = `*{box-sizing:border-box}
body{margin:0;font-family:Cairo,sans-serif;background:#f9fafb;color:#111827}
a{color:inherit;text-decoration:none}
.page{display:flex;flex-direction:column;min-height:100vh}
.container{width:100%;max-width:80rem;margin:0 auto;padding:0 1rem}
main.container{flex-grow:1;padding-top:2rem;padding-bottom:2rem}
.site-header{position:sticky;top:0;z-index:50;background:rgba(255,255,255,.9);backdrop-filter:blur(8px);border-bottom:1px solid #f3f4f6;box-shadow:0 1px 2px rgba(0,0,0,.05)}
.header-inner{height:5rem;display:flex;align-items:center;justify-content:space-between}
.logo img{height:3rem;width:auto}
.header-links{display:flex;align-items:center;gap:1rem}
.home-link{color:#4b5563;font-weight:600}
.official-link{color:#0369a1;font-weight:700;background:#f0f9ff;padding:.5rem 1rem;border-radius:9999px}
.site-footer{background:#0f172a;color:#fff;text-align:center;padding:2rem 1rem;margin-top:auto}
.site-footer p{opacity:.8;margin:0}
.hero{text-align:center;margin-bottom:3rem}
.hero h1{font-size:2.25rem;color:#0c4a6e;margin-bottom:.5rem}
.hero p{color:#6b7280;max-width:40rem;margin:0 auto}
.news-grid{display:grid;grid-template-columns:1fr;gap:2rem}
@media(min-width:768px){.news-grid{grid-template-columns:repeat(2,1fr)}}
@media(min-width:1024px){.news-grid{grid-template-columns:repeat(3,1fr)}}
.card{background:#fff;border-radius:1rem;overflow:hidden;box-shadow:0 1px 3px rgba(0,0,0,.08);display:flex;flex-direction:column}
.card-image{display:block;aspect-ratio:16/10;background:#f3f4f6}
.card-image img{width:100%;height:100%;object-fit:cover}
.card-body{padding:1.25rem;display:flex;flex-direction:column;flex-grow:1}
.card-date,.detail-date{color:#6b7280;font-size:.875rem}
.card-title{font-size:1.125rem;margin:.5rem 0;line-height:1.6}
.card-description{color:#4b5563;font-size:.95rem;display:-webkit-box;-webkit-line-clamp:3;-webkit-box-orient:vertical;overflow:hidden}
.card-footer{display:flex;align-items:center;justify-content:space-between;margin-top:auto;padding-top:1rem}
.share-links{display:flex;gap:.5rem}
.share-links a{font-size:.8rem;padding:.25rem .75rem;border-radius:9999px;background:#f3f4f6}
.read-more{color:#0284c7;font-weight:600}
.trailer{text-align:center;padding:3rem 0}
.spinner{display:inline-block;width:2rem;height:2rem;border:3px solid #bae6fd;border-top-color:#0ea5e9;border-radius:50%;animation:spin 1s linear infinite}
@keyframes spin{to{transform:rotate(360deg)}}
.error{color:#ef4444;text-align:center;padding:2rem 0}
.error.empty{padding:5rem 0}
.error button{margin-top:1rem;padding:.5rem 1.5rem;border:0;border-radius:9999px;background:#fef2f2;color:#dc2626;font:inherit;cursor:pointer}
.exhausted,.empty-note{color:#9ca3af}
.sentinel{height:2.5rem;width:100%}
.detail{max-width:56rem;margin:0 auto;background:#fff;border-radius:1rem;padding:2rem;box-shadow:0 1px 3px rgba(0,0,0,.08)}
.back-link{display:inline-block;color:#0284c7;margin-bottom:1.5rem}
.detail h1{font-size:1.875rem;line-height:1.6;color:#0c4a6e}
.gallery-stage{position:relative;border-radius:.75rem;overflow:hidden;background:#f3f4f6}
.gallery-stage img{width:100%;max-height:32rem;object-fit:contain;display:block}
.gallery-nav{position:absolute;top:50%;transform:translateY(-50%);background:rgba(0,0,0,.5);color:#fff;width:2.5rem;height:2.5rem;border-radius:50%;display:flex;align-items:center;justify-content:center;font-size:1.5rem}
.gallery-prev{right:1rem}
.gallery-next{left:1rem}
.gallery-counter{position:absolute;bottom:1rem;left:1rem;background:rgba(0,0,0,.5);color:#fff;padding:.125rem .75rem;border-radius:9999px;font-size:.875rem}
.gallery-thumbs{display:flex;gap:.5rem;overflow-x:auto;margin-top:.75rem}
.gallery-thumb img{width:5rem;height:3.5rem;object-fit:cover;border-radius:.5rem;opacity:.6}
.gallery-thumb.active img{opacity:1;outline:2px solid #0ea5e9}
.description{line-height:2;margin-top:2rem}
.description img{max-width:100%}
.share-panel{border-top:1px solid #f3f4f6;margin-top:2rem;padding-top:1.5rem}
.share-panel h3{font-size:1rem;margin-top:0}
`
