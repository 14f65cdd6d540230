package metadata

import (
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// candidates collects the raw values seen while walking the document.
// Precedence is applied once the walk is complete: OpenGraph beats
// Twitter card tags, which beat the plain HTML fallbacks.
type candidates struct {
	ogTitle       string
	ogDescription string
	ogImage       string

	twitterDescription string
	twitterImage       string

	titleTag        string
	metaDescription string
	linkImageSrc    string
}

// extractMetadata parses the page and picks title, description and
// image. The image URL is resolved against base (the final URL after
// redirects) so relative asset paths come out absolute.
func extractMetadata(r io.Reader, base *url.URL) (*PageMetadata, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var c candidates
	collect(doc, &c)

	page := &PageMetadata{
		Title:       firstNonEmpty(c.ogTitle, c.titleTag),
		Description: firstNonEmpty(c.ogDescription, c.twitterDescription, c.metaDescription),
	}

	if image := firstNonEmpty(c.ogImage, c.twitterImage, c.linkImageSrc); image != "" {
		page.Image = resolveURL(base, image)
	}

	return page, nil
}

func collect(n *html.Node, c *candidates) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "title":
			if c.titleTag == "" {
				c.titleTag = strings.TrimSpace(textContent(n))
			}
		case "meta":
			collectMeta(n, c)
		case "link":
			if strings.EqualFold(attr(n, "rel"), "image_src") && c.linkImageSrc == "" {
				c.linkImageSrc = strings.TrimSpace(attr(n, "href"))
			}
		case "body":
			// Metadata lives in <head>; no need to walk the body.
			return
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		collect(child, c)
	}
}

func collectMeta(n *html.Node, c *candidates) {
	content := strings.TrimSpace(attr(n, "content"))
	if content == "" {
		return
	}

	// OpenGraph uses property=, Twitter cards use name= or property=.
	key := attr(n, "property")
	if key == "" {
		key = attr(n, "name")
	}

	switch strings.ToLower(key) {
	case "og:title":
		setIfEmpty(&c.ogTitle, content)
	case "og:description":
		setIfEmpty(&c.ogDescription, content)
	case "og:image", "og:image:url", "og:image:secure_url":
		setIfEmpty(&c.ogImage, content)
	case "twitter:description":
		setIfEmpty(&c.twitterDescription, content)
	case "twitter:image", "twitter:image:src":
		setIfEmpty(&c.twitterImage, content)
	case "description":
		setIfEmpty(&c.metaDescription, content)
	}
}

// textContent extracts the concatenated text of a node's children.
func textContent(n *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return buf.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

func setIfEmpty(dst *string, value string) {
	if *dst == "" {
		*dst = value
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func resolveURL(base *url.URL, raw string) string {
	ref, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if base == nil {
		return ref.String()
	}
	return base.ResolveReference(ref).String()
}
