package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string

	RedisAddr string

	// 缓存有效期与单源抓取超时
	CacheTTL     time.Duration
	FetchTimeout time.Duration

	// 为空则不启动后台预热，完全依赖懒加载刷新
	CronSpec string

	// 开启后对无图文章回源抓取 og:image
	ImageScrape bool

	BasicAuthUser string
	BasicAuthPass string
}

func Load() *Config {
	// .env 可选，仅本地开发使用
	_ = godotenv.Load()

	cfg := &Config{
		AppPort:       getEnv("APP_PORT", "9000"),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		CacheTTL:      getDuration("CACHE_TTL", 5*time.Minute),
		FetchTimeout:  getDuration("FETCH_TIMEOUT", 15*time.Second),
		CronSpec:      getEnv("CRON_SPEC", ""),
		ImageScrape:   getBool("IMAGE_SCRAPE", false),
		BasicAuthUser: getEnv("APP_BASIC_USER", ""),
		BasicAuthPass: getEnv("APP_BASIC_PASS", ""),
	}

	log.Printf("config loaded: port=%s ttl=%s fetch_timeout=%s cron=%q", cfg.AppPort, cfg.CacheTTL, cfg.FetchTimeout, cfg.CronSpec)
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("warn: invalid %s=%q, using default %s", key, v, def)
		return def
	}
	return d
}

func getBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
