package api_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardenlabs/warden/internal/api"
	"github.com/wardenlabs/warden/internal/lifecycle"
)

// newClientPair serves the handler over a real listener and returns a
// client pointed at it.
func newClientPair(t *testing.T, ctrl api.Controller) *api.Client {
	t.Helper()
	srv := httptest.NewServer(api.NewHandler(ctrl, nil))
	t.Cleanup(srv.Close)
	return api.NewClient(strings.TrimPrefix(srv.URL, "http://"))
}

func TestClient_Status(t *testing.T) {
	ctrl := newMockController()
	ctrl.StatusFunc = func() lifecycle.Status {
		return lifecycle.Status{State: lifecycle.StateUp, DropletID: 42, Address: "1.2.3.4"}
	}
	client := newClientPair(t, ctrl)

	st, err := client.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StateUp, st.State)
	assert.Equal(t, 42, st.DropletID)
	assert.Equal(t, "1.2.3.4", st.Address)
}

func TestClient_CreateServer(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		ctrl := newMockController()
		ctrl.StatusFunc = func() lifecycle.Status {
			return lifecycle.Status{State: lifecycle.StateStarting, DropletID: 42}
		}
		client := newClientPair(t, ctrl)

		st, err := client.CreateServer(context.Background())
		require.NoError(t, err)
		assert.Equal(t, lifecycle.StateStarting, st.State)
	})

	t.Run("conflict is typed", func(t *testing.T) {
		ctrl := newMockController()
		ctrl.CreateServerFunc = func(ctx context.Context) (<-chan error, error) {
			return nil, lifecycle.ErrNotDown
		}
		client := newClientPair(t, ctrl)

		_, err := client.CreateServer(context.Background())

		var apiErr *api.Error
		require.ErrorAs(t, err, &apiErr)
		assert.True(t, apiErr.IsConflict())
		assert.Contains(t, apiErr.Message, "not down")
	})
}

func TestClient_StopServer(t *testing.T) {
	ctrl := newMockController()
	client := newClientPair(t, ctrl)

	_, err := client.StopServer(context.Background())
	require.NoError(t, err)
	assert.Len(t, ctrl.StopServerCalls(), 1)
}

func TestClient_ForceState(t *testing.T) {
	ctrl := newMockController()
	client := newClientPair(t, ctrl)

	_, err := client.ForceState(context.Background(), lifecycle.StateDown)
	require.NoError(t, err)
	require.Len(t, ctrl.ForceStateCalls(), 1)
	assert.Equal(t, lifecycle.StateDown, ctrl.ForceStateCalls()[0].S)
}

func TestClient_Healthy(t *testing.T) {
	client := newClientPair(t, newMockController())
	assert.True(t, client.Healthy(context.Background()))

	unreachable := api.NewClient("127.0.0.1:1")
	assert.False(t, unreachable.Healthy(context.Background()))
}
