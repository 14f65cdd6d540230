package metadata

import (
	"net/url"
	"strings"
	"testing"
)

func TestExtractMetadata_OpenGraph(t *testing.T) {
	page := `<!DOCTYPE html>
<html>
<head>
	<title>Fallback Title</title>
	<meta property="og:title" content="Example Article" />
	<meta property="og:description" content="An article about examples." />
	<meta property="og:image" content="https://cdn.example.com/cover.png" />
	<meta name="description" content="Plain description." />
</head>
<body><p>hello</p></body>
</html>`

	base, _ := url.Parse("https://example.com/articles/1")
	got, err := extractMetadata(strings.NewReader(page), base)
	if err != nil {
		t.Fatalf("extractMetadata failed: %v", err)
	}

	if got.Title != "Example Article" {
		t.Errorf("Title = %q, expected %q", got.Title, "Example Article")
	}
	if got.Description != "An article about examples." {
		t.Errorf("Description = %q, expected %q", got.Description, "An article about examples.")
	}
	if got.Image != "https://cdn.example.com/cover.png" {
		t.Errorf("Image = %q, expected %q", got.Image, "https://cdn.example.com/cover.png")
	}
}

func TestExtractMetadata_Fallbacks(t *testing.T) {
	page := `<html>
<head>
	<title>  Plain Page  </title>
	<meta name="description" content="Described the old way." />
	<meta name="twitter:image" content="/img/banner.jpg" />
</head>
<body></body>
</html>`

	base, _ := url.Parse("https://example.com/deep/path/page.html")
	got, err := extractMetadata(strings.NewReader(page), base)
	if err != nil {
		t.Fatalf("extractMetadata failed: %v", err)
	}

	if got.Title != "Plain Page" {
		t.Errorf("Title = %q, expected %q", got.Title, "Plain Page")
	}
	if got.Description != "Described the old way." {
		t.Errorf("Description = %q, expected %q", got.Description, "Described the old way.")
	}
	// Relative image resolved against the base URL.
	if got.Image != "https://example.com/img/banner.jpg" {
		t.Errorf("Image = %q, expected %q", got.Image, "https://example.com/img/banner.jpg")
	}
}

func TestExtractMetadata_PrecedenceOverTwitter(t *testing.T) {
	page := `<html><head>
	<meta name="twitter:description" content="From twitter card." />
	<meta property="og:description" content="From opengraph." />
	<meta name="twitter:image" content="https://example.com/tw.png" />
	<meta property="og:image" content="https://example.com/og.png" />
	<title>Anything</title>
</head></html>`

	got, err := extractMetadata(strings.NewReader(page), nil)
	if err != nil {
		t.Fatalf("extractMetadata failed: %v", err)
	}

	if got.Description != "From opengraph." {
		t.Errorf("Description = %q, expected og value", got.Description)
	}
	if got.Image != "https://example.com/og.png" {
		t.Errorf("Image = %q, expected og value", got.Image)
	}
}

func TestExtractMetadata_EmptyPage(t *testing.T) {
	got, err := extractMetadata(strings.NewReader("<html><head></head><body></body></html>"), nil)
	if err != nil {
		t.Fatalf("extractMetadata failed: %v", err)
	}
	if got.Title != "" {
		t.Errorf("Title = %q, expected empty", got.Title)
	}
	if got.Image != "" || got.Description != "" {
		t.Errorf("expected no image/description, got %q / %q", got.Image, got.Description)
	}
}
