package middleware

import (
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/juniper/pkg/context"
)

const (
	// HeaderUserID is the header key for the authenticated user ID
	HeaderUserID = "X-User-ID"
	// HeaderUserGroups is the header key for the caller's group memberships
	HeaderUserGroups = "X-User-Groups"
)

// Context copies dispatch-layer identity headers into the request context.
// Authentication itself happens upstream; by the time a request reaches this
// service the headers are trusted.
func Context() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			req := c.Request()

			requestID := req.Header.Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = uuid.New().String()
			}

			userID := req.Header.Get(HeaderUserID)

			var groups []string
			if raw := req.Header.Get(HeaderUserGroups); raw != "" {
				for _, g := range strings.Split(raw, ",") {
					if g = strings.TrimSpace(g); g != "" {
						groups = append(groups, g)
					}
				}
			}

			ctx := req.Context()
			ctx = context.SetRequestID(ctx, requestID)
			ctx = context.SetMethod(ctx, req.Method)
			ctx = context.SetRoute(ctx, req.URL.Path)
			ctx = context.SetRemoteIP(ctx, c.RealIP())
			ctx = context.SetUserID(ctx, userID)
			ctx = context.SetUserGroups(ctx, groups)

			c.SetRequest(req.WithContext(ctx))

			return next(c)
		}
	}
}
