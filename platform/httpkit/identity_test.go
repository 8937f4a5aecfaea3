package httpkit

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"

	"dmt_kiosk_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

func TestLogAdminActionTagsUsername(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set(ContextLoggerKey, logger.NewWithWriter("production", &buf))
	SetAdmin(c, AdminIdentity{Username: "admin", SessionID: "s1"})

	LogAdminAction(c, "customer updated", "customerId", "c1")

	out := buf.String()
	for _, want := range []string{`"msg":"customer updated"`, `"admin":"admin"`, `"customerId":"c1"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log %q missing %s", out, want)
		}
	}
}

func TestLogAdminActionWithoutLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	LogAdminAction(c, "noop")
}
