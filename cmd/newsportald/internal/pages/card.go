package pages

import (
	"net/url"
	"strconv"
	"time"

	"github.com/ascww/newsportal/models"
	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"
)

// newsPath links to an item by slug, or by id for items without one.
func newsPath(item *models.NewsItem) string {
	if item.Slug == "" {
		return "/news/" + strconv.Itoa(item.ID)
	}
	return "/news/" + url.PathEscape(item.Slug)
}

func itemDate(site Site, item *models.NewsItem, format func(time.Time) string) string {
	t, ok := item.ParseCreatedTime()
	if !ok {
		return ""
	}
	return format(t.In(site.location()))
}

func newsCard(site Site, item models.NewsItem) g.Node {
	link := newsPath(&item)
	shareURL := site.absolute(link)
	date := itemDate(site, &item, FormatDate)

	return Article(Class("card"),
		A(Class("card-image"), g.Attr("href", link),
			Img(
				g.Attr("src", item.ThumbnailURL(site.ImageBaseURL, LogoPath)),
				g.Attr("alt", item.Title),
				g.Attr("loading", "lazy"),
				g.Attr("onerror", imageFallback),
			),
		),
		Div(Class("card-body"),
			g.If(date != "", Span(Class("card-date"), g.Text(date))),
			H2(Class("card-title"), A(g.Attr("href", link), g.Text(item.Title))),
			P(Class("card-description"), g.Text(models.PlainText(item.Description))),
			Div(Class("card-footer"),
				Div(Class("share-links"),
					A(
						g.Attr("href", FacebookShareURL(shareURL)),
						g.Attr("target", "_blank"),
						g.Attr("rel", "noopener noreferrer"),
						g.Attr("title", "مشاركة على فيسبوك"),
						g.Text("فيسبوك"),
					),
					A(
						g.Attr("href", WhatsAppShareURL(item.Title, shareURL)),
						g.Attr("target", "_blank"),
						g.Attr("rel", "noopener noreferrer"),
						g.Attr("title", "مشاركة على واتساب"),
						g.Text("واتساب"),
					),
				),
				A(Class("read-more"), g.Attr("href", link), g.Text("اقرأ المزيد")),
			),
		),
	)
}

func newsCards(site Site, items []models.NewsItem) []g.Node {
	return g.Map(items, func(item models.NewsItem) g.Node {
		return newsCard(site, item)
	})
}
