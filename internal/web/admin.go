// admin.go - privacy-conscious admin dashboard
package web

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/aryanwebd35/portfolio/internal/observability"
	"github.com/aryanwebd35/portfolio/internal/store"
)

const adminCookie = "admin_token"

type admin struct {
	token        string
	salt         string
	username     string
	passwordHash []byte
	store        *store.Store
}

// newAdmin generates a fresh session token and IP hashing salt per process.
// Empty credentials fall back to development defaults. The password may be
// given in plain text or as a bcrypt hash.
func newAdmin(username, password string, st *store.Store) (*admin, error) {
	log := observability.Logger()
	if username == "" {
		username = "admin"
		if gin.Mode() == gin.DebugMode {
			log.Warn("using default admin username; set ADMIN_USERNAME")
		}
	}
	if password == "" {
		password = "admin123"
		if gin.Mode() == gin.DebugMode {
			log.Warn("using default admin password; set ADMIN_PASSWORD")
		}
	}
	hash := []byte(password)
	if !isBcryptHash(password) {
		var err error
		if hash, err = bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost); err != nil {
			return nil, fmt.Errorf("hashing admin password: %w", err)
		}
	}
	return &admin{
		token:        generateToken(),
		salt:         generateToken(),
		username:     username,
		passwordHash: hash,
		store:        st,
	}, nil
}

func isBcryptHash(s string) bool {
	_, err := bcrypt.Cost([]byte(s))
	return err == nil
}

func generateToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("generating admin token: " + err.Error())
	}
	return hex.EncodeToString(b)
}

// hashIP is stable per IP for the life of the process, so unique visitor
// counts work without storing addresses.
func (a *admin) hashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + a.salt))
	return hex.EncodeToString(sum[:])[:16]
}

func (a *admin) authRequired() gin.HandlerFunc {
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

func (a *admin) checkCredentials(username, password string) bool {
	u := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	p := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)) == nil
	return u && p
}

func (a *admin) routes(r *gin.Engine, s *Server) {
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"title":     "Privacy Policy",
			"retention": s.cfg.VisitorRetention.String(),
		})
	})

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{"title": "Admin Login"})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		log := observability.LoggerFromContext(c.Request.Context())
		if a.checkCredentials(c.PostForm("username"), c.PostForm("password")) {
			c.SetCookie(adminCookie, a.token, 3600*24, "/admin", "", false, true)
			log.Info("admin login", "client", a.hashIP(c.ClientIP()))
			c.Redirect(http.StatusFound, "/admin/dashboard")
			return
		}
		log.Warn("failed admin login", "client", a.hashIP(c.ClientIP()))
		c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{"error": "Invalid credentials"})
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
		c.Redirect(http.StatusFound, "/admin/login")
	})

	g := r.Group("/admin")
	g.Use(a.authRequired())

	g.GET("/dashboard", func(c *gin.Context) {
		stats, err := a.stats()
		if err != nil {
			observability.LoggerFromContext(c.Request.Context()).Error("loading admin stats", "error", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{"error": "Failed to load statistics"})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"stats":    stats,
			"sessions": s.sessions.len(),
		})
	})

	g.GET("/api/stats", func(c *gin.Context) {
		stats, err := a.stats()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	g.GET("/visitors", func(c *gin.Context) {
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "200"))
		if err != nil || limit <= 0 {
			limit = 200
		}
		visitors, err := a.store.RecentVisitors(limit)
		if err != nil {
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{"error": "Failed to load visitors"})
			return
		}
		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{"visitors": visitors})
	})

	g.GET("/links", func(c *gin.Context) {
		links, err := a.store.Links()
		if err != nil {
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{"error": "Failed to load links"})
			return
		}
		c.HTML(http.StatusOK, "admin-links.html", gin.H{"links": links})
	})

	// Deletes visitor records past the retention window.
	g.POST("/privacy/cleanup", func(c *gin.Context) {
		n, err := a.store.CleanupVisitors(time.Now().Add(-s.cfg.VisitorRetention))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup complete", "removed": n})
	})

	g.GET("/export/stats", func(c *gin.Context) {
		stats, err := a.stats()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		observability.LoggerFromContext(c.Request.Context()).Info("admin stats exported", "client", a.hashIP(c.ClientIP()))
		c.JSON(http.StatusOK, stats)
	})
}

func (a *admin) stats() (*store.Stats, error) {
	return a.store.Stats(time.Now())
}
