// admin.go - privacy-conscious visitor tracking and the admin dashboard
package main

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const adminCookie = "admin_token"

// Paths never recorded by visitor tracking.
var untrackedPrefixes = []string{
	"/static/",
	"/images/",
	"/admin/",
	"/api/",
	"/favicon",
	"/privacy",
	"/healthz",
}

type adminAuth struct {
	token    string
	salt     string
	username string
	password string
}

func newAdminAuth(cfg Config) *adminAuth {
	a := &adminAuth{
		token:    generateAdminToken(),
		salt:     generateAdminToken(), // Use for IP hashing
		username: cfg.AdminUsername,
		password: cfg.AdminPassword,
	}

	// Default credentials for development (remove in production)
	if a.username == "" {
		a.username = "admin"
		if gin.Mode() == gin.DebugMode {
			log.Println("WARNING: Using default admin username. Set ADMIN_USERNAME environment variable.")
		}
	}
	if a.password == "" {
		a.password = "admin123"
		if gin.Mode() == gin.DebugMode {
			log.Println("WARNING: Using default admin password. Set ADMIN_PASSWORD environment variable.")
		}
	}

	log.Printf("Admin access available at: /admin/login")
	if gin.Mode() == gin.DebugMode {
		log.Printf("Admin token (dev only): %s", a.token)
	}
	return a
}

func generateAdminToken() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		log.Fatal("Failed to generate admin token:", err)
	}
	return hex.EncodeToString(bytes)
}

// Hash IP address for privacy compliance (consistent per IP within a process)
func (a *adminAuth) hashIP(ip string) string {
	hash := sha256.New()
	hash.Write([]byte(ip + a.salt))
	return hex.EncodeToString(hash.Sum(nil))[:16]
}

func (a *adminAuth) validCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
	return userOK && passOK
}

// Middleware to check admin authentication
func (a *adminAuth) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func tracked(c *gin.Context) bool {
	path := c.Request.URL.Path
	for _, prefix := range untrackedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	// Respect Do Not Track header
	return c.GetHeader("DNT") != "1"
}

// visitorTrackingMiddleware records page views with hashed IPs. Only
// requests that matched a route and succeeded are recorded, so 404 scans
// never reach the dashboard. record runs in the background so tracking
// never slows a page down.
func (s *server) visitorTrackingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !tracked(c) {
			c.Next()
			return
		}

		hashedIP := s.admin.hashIP(c.ClientIP())
		userAgent := c.GetHeader("User-Agent")
		path := c.Request.URL.Path
		c.Next()

		if c.FullPath() == "" || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		go s.recordVisit(hashedIP, userAgent, path)
	}
}

// retentionText renders a retention period for the privacy page.
func retentionText(d time.Duration) string {
	const day = 24 * time.Hour
	if d < day || d%day != 0 {
		return d.String()
	}
	days := int(d / day)
	switch {
	case days == 365:
		return "1 year"
	case days%365 == 0:
		return fmt.Sprintf("%d years", days/365)
	case days == 1:
		return "1 day"
	default:
		return fmt.Sprintf("%d days", days)
	}
}

func (s *server) recordVisit(hashedIP, userAgent, path string) {
	if err := s.store.RecordVisit(hashedIP, userAgent, path, time.Now()); err != nil {
		log.Printf("Error recording visitor: %v", err)
	}
}

// Cleanup old visitor data for privacy compliance
func (s *server) cleanupOldVisitorData() {
	rowsDeleted, err := s.store.CleanupOldVisits(s.cfg.VisitorRetention)
	if err != nil {
		log.Printf("Error cleaning up old visitor data: %v", err)
		return
	}
	if rowsDeleted > 0 {
		log.Printf("Privacy cleanup: Removed %d visitor records older than %v", rowsDeleted, s.cfg.VisitorRetention)
	}
}

// Setup all admin routes
func (s *server) setupAdminRoutes(r *gin.Engine) {
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"title":     "Privacy Policy",
			"retention": retentionText(s.cfg.VisitorRetention),
		})
	})

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{
			"title": "Admin Login",
		})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		if s.admin.validCredentials(c.PostForm("username"), c.PostForm("password")) {
			// Set secure cookie (24 hours)
			c.SetCookie(adminCookie, s.admin.token, 3600*24, "/admin", "", false, true)
			log.Printf("Admin login successful from %s", s.admin.hashIP(c.ClientIP()))
			c.Redirect(http.StatusFound, "/admin/dashboard")
			return
		}
		log.Printf("Failed admin login attempt from %s", s.admin.hashIP(c.ClientIP()))
		c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
			"title": "Admin Login",
			"error": "Invalid credentials",
		})
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
		log.Printf("Admin logout from %s", s.admin.hashIP(c.ClientIP()))
		c.Redirect(http.StatusFound, "/admin/login")
	})

	adminGroup := r.Group("/admin")
	adminGroup.Use(s.admin.middleware())

	adminGroup.GET("/dashboard", func(c *gin.Context) {
		stats, err := s.store.AdminStats()
		if err != nil {
			log.Printf("Error loading admin stats: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"stats": stats,
		})
	})

	adminGroup.GET("/api/stats", func(c *gin.Context) {
		stats, err := s.store.AdminStats()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	adminGroup.GET("/visitors", func(c *gin.Context) {
		visitors, err := s.store.RecentVisitors(200)
		if err != nil {
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load visitors",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{
			"visitors": visitors,
		})
	})

	adminGroup.GET("/messages", func(c *gin.Context) {
		messages, err := s.store.Messages(200)
		if err != nil {
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load messages",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-messages.html", gin.H{
			"messages": messages,
		})
	})

	adminGroup.DELETE("/messages/:id", func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message id"})
			return
		}

		if err := s.store.DeleteMessage(id); err != nil {
			if errors.Is(err, errMessageNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
				return
			}
			log.Printf("Error deleting message %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete message"})
			return
		}

		log.Printf("Message %d deleted by admin from %s", id, s.admin.hashIP(c.ClientIP()))
		c.JSON(http.StatusOK, gin.H{"message": "Message deleted successfully"})
	})

	adminGroup.POST("/privacy/delete-visitor-data", func(c *gin.Context) {
		go s.cleanupOldVisitorData()
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup initiated"})
	})

	// Admin statistics export (for backups or analysis)
	adminGroup.GET("/export/stats", func(c *gin.Context) {
		stats, err := s.store.AdminStats()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		log.Printf("Admin stats exported by %s", s.admin.hashIP(c.ClientIP()))
		c.JSON(http.StatusOK, stats)
	})
}
