package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeSubmission(t *testing.T) {
	sub := ContactSubmission{
		FullName: "Jane Doe",
		Email:    "jane+site@x.com",
		Subject:  "Q&A",
		Message:  "Line one\nLine=two",
	}

	assert.Equal(t,
		"fullName=Jane+Doe&email=jane%2Bsite%40x.com&subject=Q%26A&message=Line+one%0ALine%3Dtwo",
		encodeSubmission(sub),
	)
}

func TestFormspreeService_Deliver(t *testing.T) {
	sub := ContactSubmission{FullName: "Jane Doe", Email: "jane@x.com", Subject: "Hi", Message: "Hello", Token: "tok"}

	t.Run("Delivered", func(t *testing.T) {
		var gotPath, gotType, gotAccept, gotBody string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotType = r.Header.Get("Content-Type")
			gotAccept = r.Header.Get("Accept")
			body, _ := io.ReadAll(r.Body)
			gotBody = string(body)
			w.Write([]byte(`{"ok":true}`))
		}))
		defer server.Close()

		svc := NewFormspreeService(server.URL+"/f/abc123", time.Second)
		require.NoError(t, svc.Deliver(context.Background(), sub))

		assert.Equal(t, "/f/abc123", gotPath)
		assert.Equal(t, "application/x-www-form-urlencoded", gotType)
		assert.Equal(t, "application/json", gotAccept)
		assert.Equal(t, "fullName=Jane+Doe&email=jane%40x.com&subject=Hi&message=Hello", gotBody)
		assert.NotContains(t, gotBody, "tok")
	})

	t.Run("Any 2xx is success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusAccepted)
		}))
		defer server.Close()

		svc := NewFormspreeService(server.URL+"/f/abc123", time.Second)
		assert.NoError(t, svc.Deliver(context.Background(), sub))
	})

	t.Run("Rejected", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"error":"form not found"}`))
		}))
		defer server.Close()

		svc := NewFormspreeService(server.URL+"/f/missing", time.Second)
		err := svc.Deliver(context.Background(), sub)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDeliveryRejected))
		assert.Contains(t, err.Error(), "422")
	})

	t.Run("Timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}))
		defer server.Close()

		svc := NewFormspreeService(server.URL+"/f/slow", 50*time.Millisecond)
		err := svc.Deliver(context.Background(), sub)
		require.Error(t, err)
		assert.True(t, isTimeout(err))
		assert.False(t, errors.Is(err, ErrDeliveryRejected))
	})

	t.Run("Unreachable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		svc := NewFormspreeService(url+"/f/abc", time.Second)
		err := svc.Deliver(context.Background(), sub)
		require.Error(t, err)
		assert.False(t, isTimeout(err))
	})
}
