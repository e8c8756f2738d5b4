// Package web serves the portfolio page, the assistant widget, the starfield
// stream and the admin dashboard.
package web

import (
	"fmt"
	"html/template"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aryanwebd35/portfolio/internal/assistant"
	"github.com/aryanwebd35/portfolio/internal/config"
	"github.com/aryanwebd35/portfolio/internal/content"
	"github.com/aryanwebd35/portfolio/internal/observability"
	"github.com/aryanwebd35/portfolio/internal/store"
	"github.com/aryanwebd35/portfolio/internal/typewriter"
)

const sessionCookie = "chat_session"

type Server struct {
	cfg      *config.Config
	profile  content.Profile
	summary  template.HTML
	engine   *assistant.Engine
	store    *store.Store
	mailer   Mailer
	admin    *admin
	sessions *sessions
	router   *gin.Engine

	// one slot per open starfield stream
	streams chan struct{}

	// background analytics writes; bgMu orders Add against Wait
	bgMu   sync.Mutex
	bg     sync.WaitGroup
	closed bool
}

// New wires the routes over the given profile, analytics store and mailer.
func New(cfg *config.Config, profile content.Profile, st *store.Store, mailer Mailer) (*Server, error) {
	summary, err := renderMarkdown(profile.Summary)
	if err != nil {
		return nil, err
	}
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	s := &Server{
		cfg:     cfg,
		profile: profile.Clone(),
		summary: summary,
		engine:  assistant.NewEngine(profile, nil),
		store:   st,
		mailer:  mailer,
		streams: make(chan struct{}, maxStreams(cfg)),
	}
	if s.admin, err = newAdmin(cfg.AdminUsername, cfg.AdminPassword, st); err != nil {
		return nil, err
	}
	s.sessions = newSessions(s.newChat)

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())
	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", http.FS(staticFiles()))
	r.Use(s.visitorTracking())

	r.GET("/", s.handleIndex)
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/api/profile", func(c *gin.Context) { c.JSON(http.StatusOK, s.profile) })
	r.GET("/photo", s.handlePhoto)
	r.GET("/go/:name", s.handleGo)
	r.POST("/contact", s.handleContact)

	r.POST("/chat", s.handleChatSubmit)
	r.GET("/chat/messages", s.handleChatMessages)
	r.POST("/chat/toggle", s.handleChatToggle)

	r.GET("/ws/starfield", s.handleStarfield)

	s.admin.routes(r, s)

	s.router = r
	return s, nil
}

func maxStreams(cfg *config.Config) int {
	if cfg.MaxStreams > 0 {
		return cfg.MaxStreams
	}
	return config.DefaultMaxStreams
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Wait blocks until background analytics writes have finished.
func (s *Server) Wait() {
	s.bgMu.Lock()
	defer s.bgMu.Unlock()
	s.bg.Wait()
}

// Close stops scheduling analytics writes and waits for those in flight.
// Replies still pending in open chats are delivered but no longer recorded,
// so the store can be closed afterwards.
func (s *Server) Close() {
	s.bgMu.Lock()
	defer s.bgMu.Unlock()
	s.closed = true
	s.bg.Wait()
}

func (s *Server) newChat() *assistant.Chat {
	return assistant.NewChat(s.engine,
		assistant.WithDelay(s.cfg.ReplyDelay),
		assistant.WithReplyHook(func(r assistant.Reply) {
			s.background(func() { s.recordTopic(r) })
		}),
	)
}

func (s *Server) recordTopic(r assistant.Reply) {
	if err := s.store.RecordTopic(r.Rule, time.Now()); err != nil {
		observability.Logger().Error("recording chat topic", "rule", r.Rule, "error", err)
	}
}

// background runs f off the request path, the way visit tracking always has.
// After Close it drops f.
func (s *Server) background(f func()) {
	s.bgMu.Lock()
	defer s.bgMu.Unlock()
	if s.closed {
		return
	}
	s.bg.Add(1)
	go func() {
		defer s.bg.Done()
		f()
	}()
}

type indexView struct {
	Profile content.Profile
	Summary template.HTML
	Hero    string
	Chat    chatView
	Year    int
}

func (s *Server) handleIndex(c *gin.Context) {
	// Every page load gets a fresh transcript.
	id, chat := s.sessions.create()
	setSessionCookie(c, id)

	// Without JavaScript the hero shows the first role fully typed.
	roles := s.profile.Roles
	if len(roles) == 0 {
		roles = []string{s.profile.Role}
	}
	hero := typewriter.New(roles)
	for range len([]rune(roles[0])) {
		hero.Advance()
	}

	c.HTML(http.StatusOK, "index.html", indexView{
		Profile: s.profile,
		Summary: s.summary,
		Hero:    hero.Text(),
		Chat:    newChatView(chat),
		Year:    time.Now().Year(),
	})
}

// handlePhoto serves the local profile photo, or redirects to the fallback
// image when the file is missing.
func (s *Server) handlePhoto(c *gin.Context) {
	if s.profile.Photo != "" {
		if info, err := os.Stat(s.profile.Photo); err == nil && !info.IsDir() {
			c.File(s.profile.Photo)
			return
		}
	}
	if s.profile.PhotoFallbackURL == "" {
		c.Status(http.StatusNotFound)
		return
	}
	c.Redirect(http.StatusFound, s.profile.PhotoFallbackURL)
}

// handleGo redirects to an outbound link and counts the click.
func (s *Server) handleGo(c *gin.Context) {
	name := c.Param("name")
	target, ok := s.profile.Links()[name]
	if !ok || target == "" {
		c.String(http.StatusNotFound, "unknown link %q", name)
		return
	}
	if err := s.store.RecordClick(name, target, time.Now()); err != nil {
		observability.LoggerFromContext(c.Request.Context()).Error("recording click", "link", name, "error", err)
	}
	c.Redirect(http.StatusFound, target)
}
