package web

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/avstrong/pricelist/internal/pricing"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

const (
	requestIDHeader    = "X-Request-ID"
	capabilitiesHeader = "X-Capabilities"
)

func (s *Server) loggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now().UTC()

		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Header(requestIDHeader, requestID)

		c.Next()

		var traceID string

		if sc := trace.SpanContextFromContext(c.Request.Context()); sc.IsValid() {
			traceID = sc.TraceID().String()
		}

		s.l.LogInfo(
			"type: access, method: %s, url: %s, status: %d, proto: %s, userAgent: %s, requestID: %s, traceID: %s, latency: %s",
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			c.Request.Proto,
			c.Request.UserAgent(),
			requestID,
			traceID,
			time.Since(start),
		)
	}
}

func (s *Server) recoverMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if re := recover(); re != nil {
				err, ok := re.(error)
				if !ok {
					err = fmt.Errorf("%v: %w", re, ErrPanic)
				}

				s.l.LogErrorf("type: panic, error: %v", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, errorBody(http.StatusText(http.StatusInternalServerError)))
			}
		}()

		c.Next()
	}
}

// capabilitiesMiddleware trusts the gateway in front of the service to set
// X-Capabilities after authenticating the caller.
func (s *Server) capabilitiesMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		caps := parseCapabilities(c.GetHeader(capabilitiesHeader))
		c.Request = c.Request.WithContext(pricing.NewContextWithCapabilities(c.Request.Context(), caps))

		c.Next()
	}
}

func parseCapabilities(header string) pricing.Capabilities {
	var caps pricing.Capabilities

	for _, part := range strings.Split(header, ",") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "activate":
			caps.Activate = true
		case "export":
			caps.Export = true
		}
	}

	return caps
}

func (s *Server) corsMiddleware() gin.HandlerFunc {
	conf := cors.DefaultConfig()
	conf.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Accept", requestIDHeader, capabilitiesHeader}
	conf.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	conf.ExposeHeaders = []string{"Content-Disposition", requestIDHeader}

	if len(s.conf.AllowedOrigins) == 0 || (len(s.conf.AllowedOrigins) == 1 && s.conf.AllowedOrigins[0] == "*") {
		conf.AllowAllOrigins = true
	} else {
		conf.AllowOrigins = s.conf.AllowedOrigins
	}

	return cors.New(conf)
}
