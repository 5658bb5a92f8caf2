package collector

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/LJTian/MideastHub/internal/source"
	"github.com/mmcdole/gofeed"
)

const maxFeedBytes = 4 << 20 // 4MB，防御异常大的响应体

// FetchResult 单个源的抓取结果；Err 非空时 Items 为空，失败只影响这个源
type FetchResult struct {
	Source    *source.Source
	Items     []*gofeed.Item
	FetchedAt time.Time
	Err       error
}

// RSSFetcher 负责拉取并解析单个 RSS/Atom 源
type RSSFetcher struct {
	client *http.Client
	parser *gofeed.Parser
}

func NewRSSFetcher(timeout time.Duration) *RSSFetcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &RSSFetcher{
		client: &http.Client{Timeout: timeout},
		parser: gofeed.NewParser(),
	}
}

// Fetch 对一个源发起一次请求；网络错误、非 200、解析失败都收敛到 FetchResult.Err
func (f *RSSFetcher) Fetch(ctx context.Context, src *source.Source) FetchResult {
	now := time.Now()
	items, err := f.fetchFeed(ctx, src.FeedURL)
	if err != nil {
		log.Printf("fetch %s error: %v", src.ID, err)
		return FetchResult{Source: src, FetchedAt: now, Err: err}
	}
	log.Printf("fetch %s got %d items", src.ID, len(items))
	return FetchResult{Source: src, Items: items, FetchedAt: now}
}

func (f *RSSFetcher) fetchFeed(ctx context.Context, url string) ([]*gofeed.Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "MideastHubBot/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	feed, err := f.parser.Parse(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	return feed.Items, nil
}
