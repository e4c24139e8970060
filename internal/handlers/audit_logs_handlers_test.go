package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/models"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockActivityLister struct {
	mock.Mock
}

func (m *MockActivityLister) ListSince(ctx context.Context, since time.Time, limit int) ([]*models.ActivityLog, error) {
	args := m.Called(ctx, since, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ActivityLog), args.Error(1)
}

func TestListActivity(t *testing.T) {
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		query     string
		since     time.Time
		limit     int
		wantCode  int
		wantCalls bool
	}{
		{"defaults", "", now.Add(-24 * time.Hour), 50, http.StatusOK, true},
		{"explicit window", "?since=2026-10-01T00:00:00Z&limit=10", time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), 10, http.StatusOK, true},
		{"bad since", "?since=yesterday", time.Time{}, 0, http.StatusBadRequest, false},
		{"limit too large", "?limit=5000", time.Time{}, 0, http.StatusBadRequest, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lister := &MockActivityLister{}
			if tt.wantCalls {
				lister.On("ListSince", mock.Anything, tt.since, tt.limit).Return(nil, nil)
			}
			h := NewActivityHandlers(lister)
			h.now = func() time.Time { return now }

			rec := httptest.NewRecorder()
			c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/api/authority/activity"+tt.query, nil), rec)
			require.NoError(t, h.ListActivity(c))

			assert.Equal(t, tt.wantCode, rec.Code)
			lister.AssertExpectations(t)
			if tt.wantCode == http.StatusOK {
				var resp ActivityListResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.NotNil(t, resp.Activity)
			}
		})
	}
}
