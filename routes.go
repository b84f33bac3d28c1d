package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SengdowJones/portfolio/internal/starfield"
)

type server struct {
	cfg     Config
	store   *Store
	content *SiteContent
	mailer  Mailer
	admin   *adminAuth
}

// starView is a star ready for the template.
type starView struct {
	ID        int
	Top       string
	Left      string
	Opacity   string
	SizeClass string
	Color     string
	Animation string
}

func sizeClass(s starfield.Size) string {
	switch s {
	case starfield.SizeSmall:
		return "star-small"
	case starfield.SizeLarge:
		return "star-large"
	default:
		return ""
	}
}

func colorClass(c starfield.Color) string {
	switch c {
	case starfield.ColorBlue:
		return "text-blue-400"
	case starfield.ColorPurple:
		return "text-purple-400"
	default:
		return "text-white"
	}
}

func starViews(stars []starfield.Star) []starView {
	views := make([]starView, len(stars))
	for i, s := range stars {
		views[i] = starView{
			ID:        s.ID,
			Top:       strconv.FormatFloat(s.Top, 'f', 4, 64),
			Left:      strconv.FormatFloat(s.Left, 'f', 4, 64),
			Opacity:   strconv.FormatFloat(s.Opacity, 'f', 3, 64),
			SizeClass: sizeClass(s.Size),
			Color:     colorClass(s.Color),
			Animation: s.Animation.String(),
		}
	}
	return views
}

func (s *server) newRouter() *gin.Engine {
	r := gin.Default()
	r.LoadHTMLGlob("templates/*")

	r.Static("/static", "./static")

	r.Use(s.visitorTrackingMiddleware())

	// Home page route
	r.GET("/", s.handleHome)

	// HTMX fragments
	r.GET("/contact-form", func(c *gin.Context) {
		c.HTML(http.StatusOK, "contact.html", gin.H{
			"title": "Contact Me",
		})
	})
	r.GET("/work-content", func(c *gin.Context) {
		c.HTML(http.StatusOK, "work-content.html", gin.H{
			"jobs": s.content.Experience,
		})
	})
	r.GET("/education-content", func(c *gin.Context) {
		c.HTML(http.StatusOK, "education-content.html", gin.H{
			"degrees": s.content.Education,
		})
	})

	r.POST("/contact", s.handleContact)

	r.GET("/api/stars", s.handleStars)
	r.GET("/healthz", s.handleHealth)

	s.setupAdminRoutes(r)
	return r
}

func (s *server) handleHome(c *gin.Context) {
	stars, err := starfield.Generate(s.cfg.StarCount, s.cfg.StarSeed)
	if err != nil {
		// STAR_COUNT is validated at startup
		log.Printf("Error generating star field: %v", err)
	}
	c.HTML(http.StatusOK, "index.html", gin.H{
		"content": s.content,
		"stars":   starViews(stars),
		"year":    time.Now().Year(),
	})
}

type starsQuery struct {
	Count *int   `form:"count"`
	Seed  *int64 `form:"seed"`
}

type starsResponse struct {
	Seed     int64            `json:"seed"`
	Count    int              `json:"count"`
	GridSize int              `json:"gridSize"`
	Stars    []starfield.Star `json:"stars"`
}

func (s *server) handleStars(c *gin.Context) {
	var q starsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "count and seed must be integers"})
		return
	}

	count, seed := s.cfg.StarCount, s.cfg.StarSeed
	if q.Count != nil {
		count = *q.Count
	}
	if q.Seed != nil {
		seed = *q.Seed
	}
	if count > s.cfg.StarMaxCount {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("count must be at most %d", s.cfg.StarMaxCount)})
		return
	}

	stars, err := starfield.Generate(count, seed)
	if err != nil {
		if errors.Is(err, starfield.ErrInvalidCount) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, starsResponse{
		Seed:     seed,
		Count:    count,
		GridSize: starfield.GridSize(count),
		Stars:    stars,
	})
}

func (s *server) handleHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := s.store.Ping(ctx); err != nil {
		log.Printf("Health check failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
