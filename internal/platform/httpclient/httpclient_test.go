package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsBadBaseURL(t *testing.T) {
	_, err := New("not a url", 0, nil)
	assert.Error(t, err)

	c, err := New("http://localhost:3000/", 0, nil)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", c.BaseURL)
}

func TestDo_SendsTokenAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "Sheep", r.URL.Query().Get("type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))

		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		_ = json.NewEncoder(w).Encode(map[string]string{"echo": in["msg"]})
	}))
	defer srv.Close()

	c, err := New(srv.URL, 0, nil)
	require.NoError(t, err)

	var out map[string]string
	err = c.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "echo",
		Query:  url.Values{"type": {"Sheep"}},
		Token:  "tok",
		In:     map[string]string{"msg": "hi"},
		Out:    &out,
	})
	require.NoError(t, err)
	assert.Equal(t, "hi", out["echo"])
}

func TestDo_DecodesErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"name":"IncorrectCredentialsError","message":"Email or password is incorrect"}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL, 0, nil)
	require.NoError(t, err)

	err = c.Do(context.Background(), Request{Method: http.MethodPost, Path: "/api/users/login"})
	var he *HTTPError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, http.StatusUnauthorized, he.StatusCode)
	assert.Equal(t, "IncorrectCredentialsError", he.Name)
	assert.Equal(t, "Email or password is incorrect", he.Message)
}

func TestDo_NullBodyLeavesOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("null\n"))
	}))
	defer srv.Close()

	c, err := New(srv.URL, 0, nil)
	require.NoError(t, err)

	out := map[string]string{"kept": "yes"}
	require.NoError(t, c.Do(context.Background(), Request{Method: http.MethodPut, Path: "/x", Out: &out}))
	assert.Equal(t, "yes", out["kept"])
}

func TestDo_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c, err := New(base, 0, nil)
	require.NoError(t, err)

	err = c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/api/animals"})
	assert.True(t, errors.Is(err, ErrFailedToFetch))
}
