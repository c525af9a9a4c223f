package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignUpReturnsSubject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/signup", r.URL.Path)
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "jane@example.com", body["email"])

		json.NewEncoder(w).Encode(map[string]any{"id": "sub-123"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "anon-key")
	sub, err := client.SignUp(context.Background(), "jane@example.com", "secret1", SignUpMetadata{Username: "janedoe"})
	require.NoError(t, err)
	assert.Equal(t, "sub-123", sub)
}

func TestSignUpNestedUserResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"user": map[string]any{"id": "sub-456"}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "anon-key")
	sub, err := client.SignUp(context.Background(), "jane@example.com", "secret1", SignUpMetadata{})
	require.NoError(t, err)
	assert.Equal(t, "sub-456", sub)
}

func TestSignUpAlreadyRegistered(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"msg": "User already registered"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "anon-key")
	_, err := client.SignUp(context.Background(), "jane@example.com", "secret1", SignUpMetadata{})
	assert.ErrorIs(t, err, ErrEmailRegistered)
}

func TestSignInWithPassword(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))

		json.NewEncoder(w).Encode(map[string]any{"access_token": "jwt-token"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "anon-key")
	token, err := client.SignInWithPassword(context.Background(), "jane@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", token)
}

func TestSignInInvalidCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"error_description": "Invalid login credentials"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "anon-key")
	_, err := client.SignInWithPassword(context.Background(), "jane@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
