package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aryanwebd35/portfolio/internal/assistant"
)

type chatRequest struct {
	Message string `form:"message" json:"message"`
}

type chatResponse struct {
	Accepted bool                `json:"accepted"`
	Open     bool                `json:"open"`
	Typing   bool                `json:"typing"`
	Messages []assistant.Message `json:"messages"`
}

// chatFor returns the caller's widget, starting a new one when the cookie
// is missing or its session expired.
func (s *Server) chatFor(c *gin.Context) *assistant.Chat {
	if id, err := c.Cookie(sessionCookie); err == nil {
		if chat, ok := s.sessions.get(id); ok {
			return chat
		}
	}
	id, chat := s.sessions.create()
	setSessionCookie(c, id)
	return chat
}

// setSessionCookie issues a browser-session cookie. Idle expiry is the
// server's sweep, so an active conversation keeps its transcript.
func setSessionCookie(c *gin.Context, id string) {
	c.SetCookie(sessionCookie, id, 0, "/", "", false, true)
}

func wantsJSON(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON
}

func (s *Server) respondChat(c *gin.Context, chat *assistant.Chat, accepted bool) {
	if wantsJSON(c) {
		c.JSON(http.StatusOK, chatResponse{
			Accepted: accepted,
			Open:     chat.IsOpen(),
			Typing:   chat.Typing(),
			Messages: chat.Messages(),
		})
		return
	}
	c.HTML(http.StatusOK, "chat-messages.html", newChatView(chat))
}

func (s *Server) handleChatSubmit(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	chat := s.chatFor(c)
	if !chat.Submit(req.Message) {
		// Blank input: nothing appended, nothing to swap.
		if wantsJSON(c) {
			s.respondChat(c, chat, false)
			return
		}
		c.Status(http.StatusNoContent)
		return
	}
	s.respondChat(c, chat, true)
}

func (s *Server) handleChatMessages(c *gin.Context) {
	s.respondChat(c, s.chatFor(c), false)
}

func (s *Server) handleChatToggle(c *gin.Context) {
	chat := s.chatFor(c)
	chat.Toggle()
	if wantsJSON(c) {
		s.respondChat(c, chat, false)
		return
	}
	c.HTML(http.StatusOK, "chat-widget.html", newChatView(chat))
}
