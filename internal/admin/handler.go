package admin

import (
	"net/http"
	"time"

	"dmt_kiosk_backend/platform/apperr"
	"dmt_kiosk_backend/platform/httpkit"
	"dmt_kiosk_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// Handler serves the admin sign-in endpoints.
type Handler struct {
	guard *Guard
	val   *validator.Validator
}

func NewHandler(guard *Guard, val *validator.Validator) *Handler {
	return &Handler{guard: guard, val: val}
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

type SessionResponse struct {
	Authenticated bool       `json:"authenticated"`
	Username      string     `json:"username,omitempty"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
}

// Login handles POST /api/v1/admin/login
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, httpkit.MsgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.ValidationError(c, err)
		return
	}

	token, ok, err := h.guard.Login(c.Request.Context(), req.Username, req.Password)
	if httpkit.HandleError(c, err) {
		return
	}
	if !ok {
		httpkit.Error(c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}
	httpkit.OK(c, LoginResponse{Token: token, Username: req.Username})
}

// Logout handles POST /api/v1/admin/logout
func (h *Handler) Logout(c *gin.Context) {
	if raw, ok := bearerToken(c.GetHeader("Authorization")); ok {
		if httpkit.HandleError(c, h.guard.Logout(c.Request.Context(), raw)) {
			return
		}
	}
	c.Status(http.StatusNoContent)
}

// Session handles GET /api/v1/admin/session. It answers 200 with
// authenticated=false rather than 401 so the client can check on load.
func (h *Handler) Session(c *gin.Context) {
	raw, ok := bearerToken(c.GetHeader("Authorization"))
	if !ok {
		httpkit.OK(c, SessionResponse{})
		return
	}

	session, err := h.guard.Authenticate(c.Request.Context(), raw)
	if err != nil {
		if apperr.Is(err, apperr.KindUnauthorized) {
			httpkit.OK(c, SessionResponse{})
			return
		}
		httpkit.HandleError(c, err)
		return
	}

	created := session.CreatedAt
	httpkit.OK(c, SessionResponse{
		Authenticated: true,
		Username:      session.Username,
		CreatedAt:     &created,
		ExpiresAt:     session.ExpiresAt,
	})
}
