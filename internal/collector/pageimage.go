package collector

import (
	"fmt"
	"time"

	"github.com/gocolly/colly/v2"
)

// PageImageScraper 回源抓取文章页的 og:image，给 feed 里没带图的文章兜底
type PageImageScraper struct {
	timeout time.Duration
}

func NewPageImageScraper(timeout time.Duration) *PageImageScraper {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &PageImageScraper{timeout: timeout}
}

// ScrapeOGImage 取页面 <meta property="og:image">；取不到不算错误，返回空串
func (p *PageImageScraper) ScrapeOGImage(pageURL string) (string, error) {
	c := colly.NewCollector(
		colly.MaxDepth(1),
		colly.UserAgent("MideastHubBot/1.0"),
	)
	c.SetRequestTimeout(p.timeout)

	imageURL := ""
	c.OnHTML(`meta[property="og:image"]`, func(e *colly.HTMLElement) {
		if imageURL == "" {
			imageURL = e.Attr("content")
		}
	})

	if err := c.Visit(pageURL); err != nil {
		return "", fmt.Errorf("visit %s: %w", pageURL, err)
	}
	c.Wait()
	return imageURL, nil
}
