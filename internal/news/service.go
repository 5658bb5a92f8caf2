package news

import (
	"context"
	"log"
	"time"

	"github.com/LJTian/MideastHub/internal/aggregator"
	"github.com/LJTian/MideastHub/internal/cache"
	"github.com/LJTian/MideastHub/internal/processor"
	"github.com/LJTian/MideastHub/internal/source"
)

const defaultLimit = 50

// AggregateFunc 抽象聚合入口，便于在测试里替换掉真实抓取
type AggregateFunc func(ctx context.Context, sources []*source.Source) []*processor.Article

// QueryOptions 查询条件；SourceID 和 Country 都给时 SourceID 优先决定抓哪些源
type QueryOptions struct {
	SourceID string
	Country  string
	Limit    int
}

// Service 串起缓存与聚合：命中且未过期直接出缓存，否则现场聚合。
// 只有不带筛选条件的完整聚合才允许写缓存，局部结果不能覆盖全量视图
type Service struct {
	registry  *source.Registry
	cache     *cache.Cache
	aggregate AggregateFunc
}

func NewService(registry *source.Registry, c *cache.Cache, aggregate AggregateFunc) *Service {
	return &Service{registry: registry, cache: c, aggregate: aggregate}
}

// Query 返回按条件过滤后的聚合结果
func (s *Service) Query(ctx context.Context, opts QueryOptions) (*aggregator.Result, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	filtered := opts.SourceID != "" || opts.Country != ""

	if cached, ok := s.cache.Get(ctx); ok {
		return shapeResponse(cached.Articles, s.selectSources(opts), cached.LastUpdated, opts, limit), nil
	}

	sources := s.selectSources(opts)
	articles := s.aggregate(ctx, sources)

	full := &aggregator.Result{
		Articles:    articles,
		Sources:     sources,
		LastUpdated: time.Now(),
		TotalCount:  len(articles),
	}
	if !filtered {
		s.cache.Set(ctx, full)
	}

	return shapeResponse(articles, sources, full.LastUpdated, opts, limit), nil
}

// Refresh 强制失效并立即做一次完整聚合，返回文章总数
func (s *Service) Refresh(ctx context.Context) (int, error) {
	log.Println("force refresh...")
	s.cache.Invalidate(ctx)

	all := s.registry.All()
	articles := s.aggregate(ctx, all)

	full := &aggregator.Result{
		Articles:    articles,
		Sources:     all,
		LastUpdated: time.Now(),
		TotalCount:  len(articles),
	}
	s.cache.Set(ctx, full)

	log.Printf("force refresh done, %d articles", len(articles))
	return len(articles), nil
}

// selectSources 根据筛选条件挑出要抓取（及在响应里展示）的源
func (s *Service) selectSources(opts QueryOptions) []*source.Source {
	if opts.SourceID != "" {
		if src, ok := s.registry.ByID(opts.SourceID); ok {
			return []*source.Source{src}
		}
		return nil
	}
	if opts.Country != "" {
		return s.registry.ByCountry(opts.Country)
	}
	return s.registry.All()
}

// shapeResponse 依次应用源筛选、国家筛选、条数截断；totalCount 是过滤后的数量。
// 只做切片级裁剪，绝不修改传入的文章本身
func shapeResponse(articles []*processor.Article, sources []*source.Source, lastUpdated time.Time, opts QueryOptions, limit int) *aggregator.Result {
	out := articles
	if opts.SourceID != "" {
		out = filterArticles(out, func(a *processor.Article) bool { return a.Source.ID == opts.SourceID })
	}
	if opts.Country != "" {
		out = filterArticles(out, func(a *processor.Article) bool { return a.Source.Country == opts.Country })
	}
	if len(out) > limit {
		out = out[:limit]
	}
	if out == nil {
		// JSON 里始终输出数组而不是 null
		out = []*processor.Article{}
	}

	return &aggregator.Result{
		Articles:    out,
		Sources:     sources,
		LastUpdated: lastUpdated,
		TotalCount:  len(out),
	}
}

func filterArticles(articles []*processor.Article, keep func(*processor.Article) bool) []*processor.Article {
	out := make([]*processor.Article, 0, len(articles))
	for _, a := range articles {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}
