package pages

import (
	"github.com/ascww/newsportal/feed"
	"github.com/ascww/newsportal/models"
	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"
)

const (
	homeTitle = "آخر الأخبار | " + SiteName
	retryText = "إعادة المحاولة"

	// rootMargin is how close to the viewport the sentinel must come before
	// more items are requested.
	rootMargin = "100px"
)

func moreURL(viewID string) string {
	return "/views/" + viewID + "/more"
}

func retryURL(viewID string) string {
	return "/views/" + viewID + "/retry"
}

// HomePage renders the listing for one view.
func HomePage(site Site, viewID string, state feed.State) g.Node {
	meta := defaultMetadata()
	meta.Title = homeTitle
	meta.URL = site.absolute("/")

	return document(meta,
		Section(Class("hero"),
			H1(g.Text("المركز الإعلامي")),
			P(g.Text("تابع أحدث الأخبار والفعاليات والإعلانات الخاصة بالشركة أولاً بأول")),
		),
		Section(ID("news"), newsList(site, viewID, state)),
		Script(g.Raw(infiniteScrollScript)),
	)
}

func newsList(site Site, viewID string, state feed.State) g.Node {
	d := state.Display()

	if d.EmptyError {
		return Div(Class("error empty"),
			P(g.Text(state.LastError.Message)),
			retryForm(viewID),
		)
	}

	return Div(
		Div(ID("news-grid"), Class("news-grid"), g.Group(newsCards(site, state.Revealed))),
		g.If(state.Empty(), P(Class("trailer empty-note"), g.Text("لا توجد أخبار حالياً"))),
		trailer(viewID, state),
	)
}

// trailer is everything below the cards. It is replaced wholesale whenever
// more items are revealed.
func trailer(viewID string, state feed.State) g.Node {
	d := state.Display()

	return Div(ID("news-trailer"),
		g.If(d.LoadingMore, Div(Class("trailer"), Span(Class("spinner"), g.Attr("aria-label", "جاري التحميل")))),
		g.If(d.TrailingError, Div(Class("error"),
			P(g.Text(errorMessage(state))),
			retryForm(viewID),
		)),
		g.If(d.Exhausted, Div(Class("trailer exhausted"), P(g.Text("تم تحميل جميع الأخبار")))),
		g.If(d.SentinelActive, Div(
			ID("news-sentinel"),
			Class("sentinel"),
			g.Attr("data-more-url", moreURL(viewID)),
			g.Attr("data-root-margin", rootMargin),
		)),
	)
}

func errorMessage(state feed.State) string {
	if state.LastError == nil {
		return ""
	}
	return state.LastError.Message
}

func retryForm(viewID string) g.Node {
	return FormEl(g.Attr("method", "post"), g.Attr("action", retryURL(viewID)),
		Button(g.Attr("type", "submit"), g.Text(retryText)),
	)
}

// MoreFragment is the response to a reveal-more request: the new cards and
// the refreshed trailer.
func MoreFragment(site Site, viewID string, items []models.NewsItem, state feed.State) g.Node {
	return Div(ID("news-more"),
		Div(ID("news-more-cards"), g.Group(newsCards(site, items))),
		trailer(viewID, state),
	)
}

const infiniteScrollScript = `(function () {
  function observe() {
    var sentinel = document.getElementById('news-sentinel');
    if (!sentinel || !('IntersectionObserver' in window)) return;
    var busy = false;
    var io = new IntersectionObserver(function (entries) {
      if (busy || !entries.some(function (e) { return e.isIntersecting; })) return;
      busy = true;
      fetch(sentinel.dataset.moreUrl, {headers: {'Accept': 'text/html'}})
        .then(function (resp) {
          if (!resp.ok) throw new Error('status ' + resp.status);
          return resp.text();
        })
        .then(function (body) {
          io.disconnect();
          var tpl = document.createElement('template');
          tpl.innerHTML = body;
          var cards = tpl.content.getElementById('news-more-cards');
          var grid = document.getElementById('news-grid');
          if (cards && grid) {
            while (cards.firstChild) grid.appendChild(cards.firstChild);
          }
          var next = tpl.content.getElementById('news-trailer');
          var current = document.getElementById('news-trailer');
          if (next && current) current.replaceWith(next);
          observe();
        })
        .catch(function () { busy = false; });
    }, {rootMargin: sentinel.dataset.rootMargin || '100px'});
    io.observe(sentinel);
  }
  observe();
})();`
