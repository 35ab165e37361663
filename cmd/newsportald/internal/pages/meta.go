package pages

import (
	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"
)

// Metadata describes the head metadata of a page.
type Metadata struct {
	Title         string
	Description   string
	URL           string
	Type          string
	Images        []string
	PublishedTime string
}

func defaultMetadata() Metadata {
	return Metadata{
		Title:       SiteName,
		Description: SiteDescription,
		Type:        "website",
	}
}

func property(name, content string) g.Node {
	return Meta(g.Attr("property", name), g.Attr("content", content))
}

func named(name, content string) g.Node {
	return Meta(g.Attr("name", name), g.Attr("content", content))
}

func metaTags(m Metadata) g.Node {
	nodes := []g.Node{
		TitleEl(g.Text(m.Title)),
		named("description", m.Description),
		property("og:title", m.Title),
		property("og:description", m.Description),
		property("og:type", m.Type),
		property("og:locale", "ar_EG"),
		property("og:site_name", SiteName),
	}
	if m.URL != "" {
		nodes = append(nodes, property("og:url", m.URL))
	}
	for _, img := range m.Images {
		nodes = append(nodes, property("og:image", img))
	}
	if m.PublishedTime != "" {
		nodes = append(nodes, property("article:published_time", m.PublishedTime))
	}
	if m.Type == "article" {
		nodes = append(nodes,
			named("twitter:card", "summary_large_image"),
			named("twitter:title", m.Title),
			named("twitter:description", m.Description),
		)
		for _, img := range m.Images {
			nodes = append(nodes, named("twitter:image", img))
		}
	}
	return g.Group(nodes)
}
