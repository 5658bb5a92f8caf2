package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/LJTian/MideastHub/internal/news"
	"github.com/robfig/cron/v3"
)

const refreshTimeout = 2 * time.Minute

// Scheduler 按 cron 表达式定期做完整刷新，让缓存长期保持温热；
// 不启用它时服务退化为纯懒加载，第一个过期后的请求承担刷新开销
type Scheduler struct {
	cron *cron.Cron
	svc  *news.Service
}

func New(spec string, svc *news.Service) (*Scheduler, error) {
	c := cron.New()

	s := &Scheduler{cron: c, svc: svc}
	if _, err := c.AddFunc(spec, s.runOnce); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	// 延迟首轮刷新，避免和启动后的首批请求争抢资源
	const startupDelay = 15 * time.Second
	time.AfterFunc(startupDelay, func() {
		go s.runOnce()
	})
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// RunOnce 对外暴露的单次执行入口，方便手动触发刷新
func (s *Scheduler) RunOnce() {
	s.runOnce()
}

func (s *Scheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	count, err := s.svc.Refresh(ctx)
	if err != nil {
		log.Printf("scheduled refresh error: %v", err)
		return
	}
	log.Printf("scheduled refresh done, %d articles", count)
}
