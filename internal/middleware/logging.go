package middleware

import (
	"fmt"
	"log"
	"time"

	"github.com/labstack/echo/v4"
)

// Logging writes a concise key=value line for each HTTP request. Campaign
// runs can take minutes, so the latency field matters more here than in a
// typical CRUD API.
func Logging() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			latency := time.Since(start)

			if err != nil {
				c.Error(err)
			}

			rid, _ := c.Get(ContextKeyRequestID).(string)
			line := fmt.Sprintf("request_id=%s method=%s path=%s status=%d latency=%s", rid, c.Request().Method, c.Request().URL.Path, c.Response().Status, latency)
			if email, ok := c.Get(ContextKeyUserEmail).(string); ok && email != "" {
				line += " user=" + email
			}
			log.Print(line)

			return err
		}
	}
}
