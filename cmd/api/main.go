package main

import (
	"crypto/subtle"
	"log"
	"net/http"

	"github.com/LJTian/MideastHub/internal/aggregator"
	"github.com/LJTian/MideastHub/internal/api"
	"github.com/LJTian/MideastHub/internal/cache"
	"github.com/LJTian/MideastHub/internal/collector"
	"github.com/LJTian/MideastHub/internal/config"
	"github.com/LJTian/MideastHub/internal/news"
	"github.com/LJTian/MideastHub/internal/scheduler"
	"github.com/LJTian/MideastHub/internal/source"
	"github.com/gin-gonic/gin"
)

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

	// 配置了 CRON_SPEC 才开启后台预热，否则完全按需刷新
	if cfg.CronSpec != "" {
		sched, err := scheduler.New(cfg.CronSpec, svc)
		if err != nil {
			log.Fatalf("init scheduler failed: %v", err)
		}
		sched.Start()
	}

	r := gin.Default()
	// 若配置了全局访问密码，则启用 Basic Auth 保护（/health 仍然免认证）
	if cfg.BasicAuthUser != "" && cfg.BasicAuthPass != "" {
		r.Use(basicAuthMiddleware(cfg.BasicAuthUser, cfg.BasicAuthPass))
	}

	apiServer := api.NewServer(svc)
	apiServer.RegisterRoutes(r)

	addr := ":" + cfg.AppPort
	log.Printf("starting api server at %s ...", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server exit: %v", err)
	}
}

// basicAuthMiddleware 为整个站点增加一个简单的 Basic Auth 访问密码。
// 仅当配置了 APP_BASIC_USER / APP_BASIC_PASS 时启用。
// /health 不做认证，便于健康检查。
func basicAuthMiddleware(user, pass string) gin.HandlerFunc {
	const realm = "Restricted"
	uBytes := []byte(user)
	pBytes := []byte(pass)

	return func(c *gin.Context) {
		if c.Request.URL.Path == "/health" {
			c.Next()
			return
		}
		u, p, ok := c.Request.BasicAuth()
		if !ok ||
			subtle.ConstantTimeCompare([]byte(u), uBytes) != 1 ||
			subtle.ConstantTimeCompare([]byte(p), pBytes) != 1 {
			c.Header("WWW-Authenticate", `Basic realm="`+realm+`"`)
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}
