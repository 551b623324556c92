package testutil

import (
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const headerRequestID = "X-Request-ID"

// recordRequestID keeps the request id sent by the client and echoes it back.
func (s *FakeDPMServer) recordRequestID(c *gin.Context) {
	requestID := c.GetHeader(headerRequestID)

	s.mu.Lock()
	s.requestIDs = append(s.requestIDs, requestID)
	s.mu.Unlock()

	if requestID != "" {
		c.Header(headerRequestID, requestID)
	}
	c.Next()
}

func accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		log.WithFields(log.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"latency_ms": time.Since(start).Milliseconds(),
			"request_id": c.GetHeader(headerRequestID),
		}).Debug("fake dpm tool request")
	}
}

// RequestIDs lists the X-Request-ID of every request received, in order.
func (s *FakeDPMServer) RequestIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requestIDs...)
}
