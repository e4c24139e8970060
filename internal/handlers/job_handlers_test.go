package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/jobs/background"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	ran []string
}

func (f *fakeRunner) JobNames() []string {
	return []string{"activity-archive"}
}

func (f *fakeRunner) RunNow(name string) error {
	if name != "activity-archive" {
		return fmt.Errorf("%w: %s", background.ErrUnknownJob, name)
	}
	f.ran = append(f.ran, name)
	return nil
}

func TestRunJob(t *testing.T) {
	tests := []struct {
		name string
		job  string
		want int
	}{
		{"registered", "activity-archive", http.StatusAccepted},
		{"unknown", "tally-export", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{}
			rec := httptest.NewRecorder()
			c := echo.New().NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)
			c.SetParamNames("name")
			c.SetParamValues(tt.job)

			require.NoError(t, NewJobHandlers(runner).RunJob(c))
			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusAccepted {
				assert.Equal(t, []string{tt.job}, runner.ran)
			}
		})
	}
}
