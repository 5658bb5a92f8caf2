package main

import (
	"context"
	"log"
	"time"

	"github.com/LJTian/MideastHub/internal/aggregator"
	"github.com/LJTian/MideastHub/internal/cache"
	"github.com/LJTian/MideastHub/internal/collector"
	"github.com/LJTian/MideastHub/internal/config"
	"github.com/LJTian/MideastHub/internal/news"
	"github.com/LJTian/MideastHub/internal/source"
)

// 一个仅执行一次完整聚合的命令行入口：适合手动预热缓存或排查源的健康状况
func main() {
	cfg := config.Load()

	registry := source.NewRegistry(source.DefaultSources())
	store := cache.New(cfg.CacheTTL, cfg.RedisAddr, registry)

	fetcher := collector.NewRSSFetcher(cfg.FetchTimeout)
	var scraper *collector.PageImageScraper
	if cfg.ImageScrape {
		scraper = collector.NewPageImageScraper(cfg.FetchTimeout)
	}

	agg := aggregator.New(fetcher, scraper)
	svc := news.NewService(registry, store, agg.Aggregate)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	count, err := svc.Refresh(ctx)
	if err != nil {
		log.Fatalf("collect failed: %v", err)
	}
	log.Printf("collect done, %d articles cached", count)
}
