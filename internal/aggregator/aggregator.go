package aggregator

import (
	"context"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/LJTian/MideastHub/internal/collector"
	"github.com/LJTian/MideastHub/internal/processor"
	"github.com/LJTian/MideastHub/internal/source"
)

// Result 一次完整聚合的产物，整体构建、整体替换，不做原地修改
type Result struct {
	Articles    []*processor.Article `json:"articles"`
	Sources     []*source.Source     `json:"sources"`
	LastUpdated time.Time            `json:"lastUpdated"`
	TotalCount  int                  `json:"totalCount"`
}

const (
	backfillMaxArticles = 10
	backfillConcurrency = 3
)

type Aggregator struct {
	fetcher *collector.RSSFetcher
	// 可选；非 nil 时对无图文章回源抓 og:image
	scraper *collector.PageImageScraper
}

func New(fetcher *collector.RSSFetcher, scraper *collector.PageImageScraper) *Aggregator {
	return &Aggregator{fetcher: fetcher, scraper: scraper}
}

// Aggregate 并发抓取全部源，规范化、过滤后合并排序去重。
// 单个源失败只贡献零篇文章，不影响整体；所有源都等到结束，不提前放弃
func (a *Aggregator) Aggregate(ctx context.Context, sources []*source.Source) []*processor.Article {
	log.Printf("start aggregate, %d sources...", len(sources))

	// 按源的下标写入各自的槽位，抓取完成的先后顺序不影响合并顺序
	results := make([]collector.FetchResult, len(sources))

	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func(i int, src *source.Source) {
			defer wg.Done()
			results[i] = a.fetcher.Fetch(ctx, src)
		}(i, src)
	}
	wg.Wait()

	var all []*processor.Article
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		for _, item := range res.Items {
			if !processor.IsRelevant(item.Title, item.Description, item.Content) {
				continue
			}
			all = append(all, processor.Normalize(item, res.Source, res.FetchedAt))
		}
	}

	sortNewestFirst(all)
	all = dedupe(all)

	if a.scraper != nil {
		a.backfillImages(all)
	}

	log.Printf("aggregate done, %d articles", len(all))
	return all
}

// sortNewestFirst 按发布时间倒序的稳定排序，时间相同保持原有先后
func sortNewestFirst(articles []*processor.Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].PubDate.After(articles[j].PubDate)
	})
}

// dedupe 保留首次出现的文章。两条算重复：标题去空格后小写相同，
// 或者 link 和源 id 都相同
func dedupe(articles []*processor.Article) []*processor.Article {
	seenTitle := make(map[string]bool, len(articles))
	seenLink := make(map[string]bool, len(articles))

	out := articles[:0]
	for _, a := range articles {
		titleKey := strings.ToLower(strings.TrimSpace(a.Title))
		linkKey := a.Link + "\x00" + a.Source.ID
		dup := seenTitle[titleKey] || seenLink[linkKey]
		// 被丢弃的文章同样占住键位：后面跟它撞上任一键的也算重复
		seenTitle[titleKey] = true
		seenLink[linkKey] = true
		if dup {
			continue
		}
		out = append(out, a)
	}
	return out
}

// backfillImages 给排在前面的无图文章回源补图，尽力而为，失败忽略
func (a *Aggregator) backfillImages(articles []*processor.Article) {
	var targets []*processor.Article
	for _, art := range articles {
		if art.ImageURL == "" && art.Link != "" {
			targets = append(targets, art)
		}
		if len(targets) >= backfillMaxArticles {
			break
		}
	}
	if len(targets) == 0 {
		return
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, backfillConcurrency)
	for _, art := range targets {
		wg.Add(1)
		sem <- struct{}{}
		go func(art *processor.Article) {
			defer wg.Done()
			defer func() { <-sem }()

			u, err := a.scraper.ScrapeOGImage(art.Link)
			if err != nil {
				log.Printf("backfill image %s error: %v", art.Link, err)
				return
			}
			if u != "" {
				art.ImageURL = u
			}
		}(art)
	}
	wg.Wait()
}
