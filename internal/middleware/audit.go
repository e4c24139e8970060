package middleware

import (
	"errors"
	"net/http"

	"storefront/internal/common"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/labstack/echo/v4"
)

// ActivityMiddleware records one activity entry per request of the routes it wraps
type ActivityMiddleware struct {
	sink services.ActivitySink
}

func NewActivityMiddleware(sink services.ActivitySink) *ActivityMiddleware {
	return &ActivityMiddleware{sink: sink}
}

// Track dispatches the action with the status the client received. The user is
// taken from the token, or from ActivityUserKey when the handler set one.
func (m *ActivityMiddleware) Track(action, role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)

			userID, _ := common.GetUserIDFromContext(c.Request().Context())
			if id, ok := c.Get(common.ActivityUserKey).(string); ok && id != "" {
				userID = id
			}

			m.sink.Dispatch(models.ActivityRecord{
				UserID:     userID,
				Action:     action,
				UserRole:   role,
				StatusCode: responseStatus(c, err),
			})
			return err
		}
	}
}

// responseStatus reports the committed status, or the one the error handler will write
func responseStatus(c echo.Context, err error) int {
	if c.Response().Committed || err == nil {
		return c.Response().Status
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusInternalServerError
}
