package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardenlabs/warden/internal/api"
	"github.com/wardenlabs/warden/internal/api/mocks"
	"github.com/wardenlabs/warden/internal/lifecycle"
)

func newMockController() *mocks.ControllerMock {
	return &mocks.ControllerMock{
		CreateServerFunc: func(ctx context.Context) (<-chan error, error) {
			done := make(chan error, 1)
			done <- nil
			return done, nil
		},
		StopServerFunc: func(ctx context.Context) error { return nil },
		ForceStateFunc: func(ctx context.Context, s lifecycle.State) {},
		StatusFunc: func() lifecycle.Status {
			return lifecycle.Status{State: lifecycle.StateDown}
		},
	}
}

func decodeStatus(t *testing.T, rec *httptest.ResponseRecorder) lifecycle.Status {
	t.Helper()
	var st lifecycle.Status
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&st))
	return st
}

func TestHandler_Status(t *testing.T) {
	ctrl := newMockController()
	ctrl.StatusFunc = func() lifecycle.Status {
		return lifecycle.Status{State: lifecycle.StateUp, DropletID: 42, Address: "1.2.3.4"}
	}
	h := api.NewHandler(ctrl, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/status", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	st := decodeStatus(t, rec)
	assert.Equal(t, lifecycle.StateUp, st.State)
	assert.Equal(t, 42, st.DropletID)
	assert.Equal(t, "1.2.3.4", st.Address)
}

func TestHandler_Create(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		ctrl := newMockController()
		ctrl.StatusFunc = func() lifecycle.Status {
			return lifecycle.Status{State: lifecycle.StateStarting, DropletID: 42}
		}
		h := api.NewHandler(ctrl, nil)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/server", nil))

		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.Equal(t, lifecycle.StateStarting, decodeStatus(t, rec).State)
		assert.Len(t, ctrl.CreateServerCalls(), 1)
	})

	t.Run("guard rejection maps to conflict", func(t *testing.T) {
		ctrl := newMockController()
		ctrl.CreateServerFunc = func(ctx context.Context) (<-chan error, error) {
			return nil, lifecycle.ErrNotDown
		}
		h := api.NewHandler(ctrl, nil)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/server", nil))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestHandler_Delete(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		ctrl := newMockController()
		h := api.NewHandler(ctrl, nil)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/v1/server", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, ctrl.StopServerCalls(), 1)
	})

	t.Run("guard rejection maps to conflict", func(t *testing.T) {
		ctrl := newMockController()
		ctrl.StopServerFunc = func(ctx context.Context) error { return lifecycle.ErrNotRunning }
		h := api.NewHandler(ctrl, nil)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/v1/server", nil))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestHandler_ForceState(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		ctrl := newMockController()
		h := api.NewHandler(ctrl, nil)

		body := strings.NewReader(`{"state": "weird"}`)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/v1/state", body))

		assert.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, ctrl.ForceStateCalls(), 1)
		assert.Equal(t, lifecycle.StateWeird, ctrl.ForceStateCalls()[0].S)
	})

	t.Run("unknown state", func(t *testing.T) {
		ctrl := newMockController()
		h := api.NewHandler(ctrl, nil)

		body := strings.NewReader(`{"state": "rebooting"}`)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/v1/state", body))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, ctrl.ForceStateCalls())
	})

	t.Run("malformed body", func(t *testing.T) {
		ctrl := newMockController()
		h := api.NewHandler(ctrl, nil)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/v1/state", strings.NewReader("{")))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_Healthz(t *testing.T) {
	h := api.NewHandler(newMockController(), nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_Metrics(t *testing.T) {
	h := api.NewHandler(newMockController(), nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
