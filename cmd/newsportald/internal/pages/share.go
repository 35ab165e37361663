package pages

import (
	"net/url"
	"strings"
)

func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func FacebookShareURL(pageURL string) string {
	return "https://www.facebook.com/sharer/sharer.php?u=" + encodeComponent(pageURL)
}

func WhatsAppShareURL(text, pageURL string) string {
	return "https://wa.me/?text=" + encodeComponent(text) + "%20" + encodeComponent(pageURL)
}
