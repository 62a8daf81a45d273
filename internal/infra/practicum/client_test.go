package practicum

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"homework_status_bot/internal/domain/homework"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchUpdates_Success(t *testing.T) {
	var gotAuth, gotFromDate string
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotFromDate = r.URL.Query().Get("from_date")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"homeworks": [
				{"homework_name": "proj1", "status": "approved", "reviewer_comment": "Well done"}
			],
			"current_date": 1700000000
		}`))
	})

	client := NewClient("secret-token", srv.URL, 5*time.Second)
	resp, err := client.FetchUpdates(context.Background(), 1699999000)
	require.NoError(t, err)

	assert.Equal(t, "OAuth secret-token", gotAuth)
	assert.Equal(t, "1699999000", gotFromDate)
	assert.Equal(t, int64(1700000000), resp.CurrentDate)
	require.Len(t, resp.Homeworks, 1)
	assert.Equal(t, "proj1", resp.Homeworks[0].HomeworkName)
	assert.Equal(t, homework.StatusApproved, resp.Homeworks[0].Status)
	assert.Equal(t, "Well done", resp.Homeworks[0].ReviewerComment)
}

func TestFetchUpdates_EmptyHomeworksList(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"homeworks": [], "current_date": 1700000100}`))
	})

	client := NewClient("secret-token", srv.URL, 5*time.Second)
	resp, err := client.FetchUpdates(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, resp.Homeworks)
	assert.Equal(t, int64(1700000100), resp.CurrentDate)
}

func TestFetchUpdates_HTTPErrorStatus(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	client := NewClient("secret-token", srv.URL, 5*time.Second)
	_, err := client.FetchUpdates(context.Background(), 0)
	require.Error(t, err)

	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, http.StatusInternalServerError, reqErr.StatusCode)
}

func TestFetchUpdates_TransportError(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close() // force a connection error

	client := NewClient("secret-token", srv.URL, 1*time.Second)
	_, err := client.FetchUpdates(context.Background(), 0)
	require.Error(t, err)

	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Zero(t, reqErr.StatusCode)
}

func TestFetchUpdates_MalformedBody(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{name: "not json", body: `<html>maintenance</html>`},
		{name: "missing homeworks key", body: `{"current_date": 1700000000}`},
		{name: "missing current_date key", body: `{"homeworks": []}`},
		{name: "homeworks is not a list", body: `{"homeworks": "nope", "current_date": 1700000000}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tc.body))
			})

			client := NewClient("secret-token", srv.URL, 5*time.Second)
			_, err := client.FetchUpdates(context.Background(), 0)
			require.Error(t, err)

			var formatErr *ResponseFormatError
			assert.True(t, errors.As(err, &formatErr))
		})
	}
}

func TestNewClient_DefaultEndpoint(t *testing.T) {
	client := NewClient("secret-token", "", 5*time.Second)
	assert.Equal(t, DefaultEndpoint, client.endpoint)
}
