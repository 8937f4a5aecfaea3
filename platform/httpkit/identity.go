package httpkit

import "github.com/gin-gonic/gin"

// ContextAdminKey is the gin context key for the authenticated admin.
const ContextAdminKey = "admin"

// AdminIdentity is what admin handlers may know about the caller.
type AdminIdentity struct {
	Username  string
	SessionID string
}

// SetAdmin stores the authenticated admin on the context.
func SetAdmin(c *gin.Context, id AdminIdentity) {
	c.Set(ContextAdminKey, id)
}

// GetAdmin extracts the authenticated admin, if any.
func GetAdmin(c *gin.Context) (AdminIdentity, bool) {
	v, ok := c.Get(ContextAdminKey)
	if !ok {
		return AdminIdentity{}, false
	}
	id, ok := v.(AdminIdentity)
	return id, ok
}

// LogAdminAction records an admin write on the request logger, tagged with
// the admin's username.
func LogAdminAction(c *gin.Context, action string, args ...interface{}) {
	log := LoggerFrom(c)
	if log == nil {
		return
	}
	id, _ := GetAdmin(c)
	log.Info(action, append([]interface{}{"admin", id.Username}, args...)...)
}
