package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"storefront/internal/common"
	"storefront/internal/models"

	"github.com/labstack/echo/v4"
)

const (
	defaultActivityLimit = 50
	maxActivityLimit     = 1000
	defaultActivityRange = 24 * time.Hour
)

// ActivityLister is satisfied by repositories.ActivityRepository
type ActivityLister interface {
	ListSince(ctx context.Context, since time.Time, limit int) ([]*models.ActivityLog, error)
}

// ActivityHandlers exposes the user activity log to administrators
type ActivityHandlers struct {
	activity ActivityLister
	now      func() time.Time
}

func NewActivityHandlers(activity ActivityLister) *ActivityHandlers {
	return &ActivityHandlers{activity: activity, now: time.Now}
}

type ActivityListResponse struct {
	Msg      string                `json:"msg"`
	Activity []*models.ActivityLog `json:"activity"`
}

// ListActivity handles GET /api/authority/activity?since=&limit=
func (h *ActivityHandlers) ListActivity(c echo.Context) error {
	since := h.now().Add(-defaultActivityRange)
	if raw := c.QueryParam("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return common.SendValidationError(c, "since", common.MsgFillAllFields)
		}
		since = parsed
	}

	limit := defaultActivityLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxActivityLimit {
			return common.SendValidationError(c, "limit", common.MsgFillAllFields)
		}
		limit = n
	}

	entries, err := h.activity.ListSince(c.Request().Context(), since, limit)
	if err != nil {
		c.Logger().Errorf("list activity: %v", err)
		return common.SendServerError(c, common.MsgGenericError)
	}
	if entries == nil {
		entries = []*models.ActivityLog{}
	}
	return c.JSON(http.StatusOK, ActivityListResponse{Msg: common.MsgActivityLog, Activity: entries})
}
