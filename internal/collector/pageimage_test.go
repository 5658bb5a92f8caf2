package collector

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestScrapeOGImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head>
<meta property="og:title" content="story"/>
<meta property="og:image" content="http://cdn/x.jpg"/>
</head><body>text</body></html>`)
	}))
	defer srv.Close()

	p := NewPageImageScraper(5 * time.Second)
	u, err := p.ScrapeOGImage(srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u != "http://cdn/x.jpg" {
		t.Fatalf("ScrapeOGImage = %q, want og:image content", u)
	}
}

func TestScrapeOGImageMissingIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><title>plain</title></head><body>no og tags</body></html>`)
	}))
	defer srv.Close()

	p := NewPageImageScraper(5 * time.Second)
	u, err := p.ScrapeOGImage(srv.URL)
	if err != nil {
		t.Fatalf("missing og:image should not error: %v", err)
	}
	if u != "" {
		t.Fatalf("ScrapeOGImage = %q, want empty", u)
	}
}
