package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"momsdigitales/util"
	"momsdigitales/util/model"
)

func TestDoJSONSendsBodyAndToken(t *testing.T) {
	var got model.Credentials
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "Bearer tk", req.Header.Get("Authorization"))
		assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
		assert.NoError(t, util.DecodeJSON(req.Body, &got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"_id":"u1","username":"Ana","role":"user","token":"nuevo"}`))
	}))
	defer ts.Close()

	c := New(ts.URL, ts.Client(), func() string { return "tk" })
	res, err := c.Login(context.Background(), model.Credentials{Email: "ana@test.com", Password: "secreto"})
	require.NoError(t, err)
	assert.Equal(t, "ana@test.com", got.Email)
	assert.Equal(t, "nuevo", res.Token)
	assert.Equal(t, "Ana", res.Username)
}

func TestDoJSONEncodeErrorSkipsRequest(t *testing.T) {
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
	}))
	defer ts.Close()

	c := New(ts.URL, ts.Client(), nil)
	err := c.doJSON(context.Background(), http.MethodPost, "/x", map[string]any{"bad": func() {}}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encoding POST /x")
	assert.Zero(t, hits.Load())
}

func TestBackendMessageIsSurfaced(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Credenciales inválidas"}`))
	}))
	defer ts.Close()

	c := New(ts.URL, ts.Client(), nil)
	_, err := c.Login(context.Background(), model.Credentials{Email: "x", Password: "y"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "Credenciales inválidas", Message(err, "fallback"))
}
