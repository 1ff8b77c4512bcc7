package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yanqian/faq-widget/internal/domain/chat"
	"github.com/yanqian/faq-widget/internal/domain/faq"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	faqSvc   faq.Service
	sessions *chat.Manager
	corpus   faq.Corpus
	logger   *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(faqSvc faq.Service, sessions *chat.Manager, corpus faq.Corpus, logger *slog.Logger) *Handler {
	return &Handler{
		faqSvc:   faqSvc,
		sessions: sessions,
		corpus:   corpus,
		logger:   logger.With("component", "http.handler"),
	}
}

type widgetResponse struct {
	BotName        string `json:"botName"`
	WelcomeMessage string `json:"welcomeMessage"`
	PrimaryColor   string `json:"primaryColor"`
	Position       string `json:"position"`
}

type submitResponse struct {
	Message chat.Message `json:"message"`
	State   chat.State   `json:"state"`
}

// Health reports liveness and the loaded corpus size.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "entries": len(h.corpus.Entries())})
}

// Widget returns the presentation options for the chat widget.
func (h *Handler) Widget(c *gin.Context) {
	cfg := h.sessions.Config()
	c.JSON(http.StatusOK, widgetResponse{
		BotName:        cfg.BotName,
		WelcomeMessage: cfg.WelcomeMessage,
		PrimaryColor:   cfg.PrimaryColor,
		Position:       cfg.Position,
	})
}

// Match answers a single query without a session.
func (h *Handler) Match(c *gin.Context) {
	var req faq.MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.faqSvc.Answer(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, domainError(err, "faq_failed"))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Stats returns the most frequent queries and their outcomes.
func (h *Handler) Stats(c *gin.Context) {
	items, err := h.faqSvc.Stats(c.Request.Context())
	if err != nil {
		abortWithError(c, domainError(err, "faq_failed"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": items})
}

// CreateSession mounts a new widget session.
func (h *Handler) CreateSession(c *gin.Context) {
	session, err := h.sessions.Create()
	if err != nil {
		abortWithError(c, domainError(err, "session_failed"))
		return
	}
	c.JSON(http.StatusCreated, session.State())
}

// OpenSession shows the widget, appending the welcome message once.
func (h *Handler) OpenSession(c *gin.Context) {
	session, ok := h.lookupSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, session.Open())
}

// CloseSession hides the widget.
func (h *Handler) CloseSession(c *gin.Context) {
	session, ok := h.lookupSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, session.Close())
}

// Transcript returns the session messages appended so far.
func (h *Handler) Transcript(c *gin.Context) {
	session, ok := h.lookupSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, session.State())
}

// SubmitMessage appends a user message; the bot reply arrives asynchronously.
func (h *Handler) SubmitMessage(c *gin.Context) {
	session, ok := h.lookupSession(c)
	if !ok {
		return
	}
	var req chat.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	msg, err := session.Submit(c.Request.Context(), req.Text)
	if err != nil {
		abortWithError(c, domainError(err, "submit_failed"))
		return
	}

	c.JSON(http.StatusAccepted, submitResponse{Message: msg, State: session.State()})
}

// DeleteSession unmounts the widget session.
func (h *Handler) DeleteSession(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	if err := h.sessions.Delete(id); err != nil {
		abortWithError(c, domainError(err, "session_failed"))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) lookupSession(c *gin.Context) (*chat.Session, bool) {
	id, ok := parseSessionID(c)
	if !ok {
		return nil, false
	}
	session, err := h.sessions.Get(id)
	if err != nil {
		abortWithError(c, domainError(err, "session_failed"))
		return nil, false
	}
	return session, true
}

func parseSessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "invalid session id", err))
		return uuid.Nil, false
	}
	return id, true
}
