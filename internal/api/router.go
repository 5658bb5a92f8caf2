package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/LJTian/MideastHub/internal/news"
	"github.com/gin-gonic/gin"
)

type Server struct {
	svc *news.Service
}

func NewServer(svc *news.Service) *Server {
	return &Server{svc: svc}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.health)

	r.GET("/api/news", s.getNews)
	r.POST("/api/news", s.refreshNews)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) getNews(c *gin.Context) {
	sourceID := c.Query("source")
	country := c.Query("country")

	limitStr := c.DefaultQuery("limit", "50")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = 50
	}

	res, err := s.svc.Query(c.Request.Context(), news.QueryOptions{
		SourceID: sourceID,
		Country:  country,
		Limit:    limit,
	})
	if err != nil {
		// 细节只进日志，对外保持笼统
		log.Printf("query news error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch news"})
		return
	}

	c.JSON(http.StatusOK, res)
}

func (s *Server) refreshNews(c *gin.Context) {
	count, err := s.svc.Refresh(c.Request.Context())
	if err != nil {
		log.Printf("refresh news error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to refresh cache"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "cache refreshed successfully",
		"articlesCount": count,
	})
}
