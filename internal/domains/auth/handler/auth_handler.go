package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mineral-catalog/internal/domains/auth/model"
	"mineral-catalog/internal/domains/auth/service"
	"mineral-catalog/internal/shared/middleware"
	"mineral-catalog/internal/shared/response"
	"mineral-catalog/pkg/logger"
)

// CookieConfig controls the session cookie.
type CookieConfig struct {
	Name   string
	TTL    time.Duration // 0 = browser session cookie
	Secure bool
}

type AuthHandler struct {
	service service.AuthService
	cookie  CookieConfig
}

func NewAuthHandler(service service.AuthService, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{service: service, cookie: cookie}
}

// Login handles POST /login (form: username, password).
// On success it sets the session cookie and redirects to /.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.CredentialsReq
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "Invalid form")
		return
	}

	s, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.setSessionCookie(c, s.Token)
	c.Redirect(http.StatusFound, "/")
}

// Register handles POST /register. A new account is logged in right away.
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.CredentialsReq
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "Invalid form")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrInvalidUsername.Code, model.ErrInvalidUsername.Message, err)
		return
	}

	s, err := h.service.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.setSessionCookie(c, s.Token)
	c.Redirect(http.StatusFound, "/")
}

// Logout handles GET|POST /logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(h.cookie.Name); err == nil {
		if err := h.service.Logout(c.Request.Context(), token); err != nil {
			logger.Error("Logout: session store error", err)
		}
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
	c.Redirect(http.StatusFound, "/")
}

// Session handles GET /session.
func (h *AuthHandler) Session(c *gin.Context) {
	s := middleware.CurrentSession(c)
	if s == nil {
		response.Success(c, http.StatusOK, "", model.SessionResp{})
		return
	}

	response.Success(c, http.StatusOK, "", model.SessionResp{
		Authenticated: true,
		Username:      s.Username,
		IsAdmin:       s.IsAdmin,
	})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, token, int(h.cookie.TTL.Seconds()), "/", "", h.cookie.Secure, true)
}

func (h *AuthHandler) handleError(c *gin.Context, err error) {
	status, message, code := model.MapErrorToHTTP(err)
	if status >= http.StatusInternalServerError {
		logger.Error("Auth request failed", err)
	}
	response.ErrorResponse(c, status, code, message)
}
