package pages

import (
	"net/http"
	"time"

	"github.com/ascww/newsportal/models"
	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"
)

const (
	summaryLength = 160

	MessageNotFound    = "الخبر غير موجود"
	MessageDetailError = "حدث خطأ أثناء تحميل الخبر"
)

// NewsPage renders a single item. image selects the gallery image.
func NewsPage(site Site, item *models.NewsItem, image int) g.Node {
	pageURL := site.absolute(newsPath(item))
	summary := models.Summary(item.Description, summaryLength)
	images := item.ImageURLs(site.ImageBaseURL)

	meta := Metadata{
		Title:       item.Title,
		Description: summary,
		URL:         pageURL,
		Type:        "article",
		Images:      images,
	}
	if t, ok := item.ParseCreatedTime(); ok {
		meta.PublishedTime = t.UTC().Format(time.RFC3339)
	}

	shareText := item.Title + "\n\n" + summary
	date := itemDate(site, item, FormatLongDate)

	return document(meta,
		Div(Class("detail"),
			A(Class("back-link"), g.Attr("href", "/"), g.Text("العودة للأخبار")),
			g.If(date != "", P(Class("detail-date"), g.Text(date))),
			H1(g.Text(item.Title)),
			galleryComponent(NewGallery(images, image), item.Title),
			Div(Class("description"), g.Raw(models.CleanDescription(item.Description))),
			Div(Class("share-panel"),
				H3(g.Text("مشاركة الخبر")),
				Div(Class("share-links"),
					A(
						g.Attr("href", FacebookShareURL(pageURL)),
						g.Attr("target", "_blank"),
						g.Attr("rel", "noopener noreferrer"),
						g.Text("فيسبوك"),
					),
					A(
						g.Attr("href", WhatsAppShareURL(shareText, pageURL)),
						g.Attr("target", "_blank"),
						g.Attr("rel", "noopener noreferrer"),
						g.Text("واتساب"),
					),
				),
			),
		),
	)
}

// NewsErrorPage is shown when an item cannot be loaded. status selects the
// message.
func NewsErrorPage(status int) g.Node {
	message := MessageDetailError
	if status == http.StatusNotFound {
		message = MessageNotFound
	}

	meta := defaultMetadata()
	meta.Title = "News Details"
	meta.Description = "Read the latest news from Assiut Water Company"

	return document(meta,
		Div(Class("error empty"),
			P(g.Text(message)),
			A(Class("back-link"), g.Attr("href", "/"), g.Text("العودة للرئيسية")),
		),
	)
}
