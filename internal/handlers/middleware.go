package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"bookfans/internal/models"
	"bookfans/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ctxCurrentUser  = "currentUser"
	ctxRequestID    = "requestID"
	headerRequestID = "X-Request-ID"
)

// userIdentity resolves the bearer token to a stored user and keeps it in the context.
func (h *Handler) userIdentity(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		unauthorized(c, "missing Authorization header")
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		unauthorized(c, "invalid Authorization header format")
		return
	}

	user, err := h.services.ResolveCurrentUser(c.Request.Context(), parts[1])
	if err != nil {
		if errors.Is(err, service.ErrUnauthenticated) {
			if h.log != nil {
				h.log.Infow("auth_token_rejected", "err", err, "request_id", requestIDFrom(c))
			}
			unauthorized(c, service.ErrUnauthenticated.Error())
			return
		}
		h.writeError(c, "resolve_current_user", err)
		c.Abort()
		return
	}

	// store in Gin context
	c.Set(ctxCurrentUser, user)
	c.Next()
}

// currentUserFrom returns the user stored by userIdentity.
func currentUserFrom(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(ctxCurrentUser)
	if !ok {
		return models.User{}, false
	}
	u, ok := v.(models.User)
	return u, ok
}

// requestID propagates X-Request-ID or generates a new one.
func (h *Handler) requestID(c *gin.Context) {
	id := c.GetHeader(headerRequestID)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set(ctxRequestID, id)
	c.Header(headerRequestID, id)
	c.Next()
}

func requestIDFrom(c *gin.Context) string {
	if v, ok := c.Get(ctxRequestID); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return c.GetHeader(headerRequestID)
}

func (h *Handler) cors(c *gin.Context) {
	origin := c.GetHeader("Origin")
	allowed := origin != "" && h.originAllowed(origin)
	if allowed {
		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Vary", "Origin")
	}
	c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
	c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization, X-Request-ID")

	if c.Request.Method == http.MethodOptions {
		if origin != "" && !allowed {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.AbortWithStatus(http.StatusNoContent)
		return
	}
	c.Next()
}

func (h *Handler) originAllowed(origin string) bool {
	if h.allowAnyOrigin {
		return true
	}
	_, ok := h.allowedOrigins[origin]
	return ok
}

func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()
	if h.log == nil {
		return
	}
	h.log.Infow("http_request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"latency", time.Since(start),
		"request_id", requestIDFrom(c),
	)
}
