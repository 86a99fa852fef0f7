package http

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoginLimiter_CleanupQuitaIPsInactivas(t *testing.T) {
	l := NewLoginLimiter(10, 1, nil)
	t.Cleanup(l.Stop)

	l.Allow("10.0.0.1")
	l.Allow("10.0.0.2")
	l.mu.Lock()
	l.limiters["10.0.0.1"].lastAccess = time.Now().Add(-time.Hour)
	l.mu.Unlock()

	l.cleanup(time.Now())
	assert.Equal(t, 1, l.Count())
}

func TestErrorStatus_DominioAHTTP(t *testing.T) {
	status, code := errorStatus(errReportDisabled)
	assert.Equal(t, 501, status)
	assert.Equal(t, "NOT_SUPPORTED", code)
}
