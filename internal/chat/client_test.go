package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_Success(t *testing.T) {
	var got Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(Response{Reply: "Grace.", MessageID: got.MessageID})
	}))
	defer srv.Close()

	resp, err := NewHTTPClient(srv.URL+"/", nil).Send(context.Background(), Request{Message: "What is grace?", MessageID: "msg-1"})
	require.NoError(t, err)
	assert.Equal(t, "Grace.", resp.Reply)
	assert.Equal(t, "msg-1", resp.MessageID)
	assert.Equal(t, Request{Message: "What is grace?", MessageID: "msg-1"}, got)
}

func TestHTTPClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Message is required"}`))
	}))
	defer srv.Close()

	_, err := NewHTTPClient(srv.URL, nil).Send(context.Background(), Request{})
	var se *ServerError
	require.True(t, errors.As(err, &se), "got %T", err)
	assert.Equal(t, http.StatusBadRequest, se.Status)
	assert.Equal(t, "Message is required", se.Message)
}

func TestHTTPClient_ServerErrorWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewHTTPClient(srv.URL, nil).Send(context.Background(), Request{Message: "q"})
	var se *ServerError
	require.True(t, errors.As(err, &se))
	assert.Empty(t, se.Message)
}

func TestHTTPClient_UnreadableSuccessIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	resp, err := NewHTTPClient(srv.URL, nil).Send(context.Background(), Request{Message: "q"})
	require.NoError(t, err)
	assert.Empty(t, resp.Reply)
}

func TestHTTPClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTPClient(url, nil).Send(context.Background(), Request{Message: "q"})
	var ne *NetworkError
	require.True(t, errors.As(err, &ne), "got %T", err)
}
