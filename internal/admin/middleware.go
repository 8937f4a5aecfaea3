package admin

import (
	"net/http"
	"strings"

	"dmt_kiosk_backend/platform/apperr"
	"dmt_kiosk_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Required rejects requests without a live admin session and puts the
// admin identity on the context otherwise.
func Required(guard *Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortUnauthorized(c)
			return
		}

		session, err := guard.Authenticate(c.Request.Context(), raw)
		if err != nil {
			if apperr.Is(err, apperr.KindUnauthorized) {
				abortUnauthorized(c)
				return
			}
			httpkit.HandleError(c, err)
			c.Abort()
			return
		}

		httpkit.SetAdmin(c, httpkit.AdminIdentity{Username: session.Username, SessionID: session.ID})
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	return raw, raw != ""
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, httpkit.ErrorResponse{Error: msgUnauthorized})
}
