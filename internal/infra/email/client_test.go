package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClientSendSuccess(t *testing.T) {
	var gotAuth string
	var gotBody sendRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/emails" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"msg-1"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "reminders@example.com")

	err := client.Send(context.Background(), "owner@example.com", "Compliance reminder", "<p>2 tasks due</p>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAuth != "Bearer test-key" {
		t.Errorf("authorization = %q", gotAuth)
	}
	if gotBody.From != "reminders@example.com" {
		t.Errorf("from = %q", gotBody.From)
	}
	if len(gotBody.To) != 1 || gotBody.To[0] != "owner@example.com" {
		t.Errorf("to = %v", gotBody.To)
	}
	if gotBody.Subject != "Compliance reminder" {
		t.Errorf("subject = %q", gotBody.Subject)
	}
}

func TestClientSendAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"name":"validation_error","message":"invalid to address"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "reminders@example.com")

	err := client.Send(context.Background(), "not-an-address", "subject", "body")
	if err == nil {
		t.Fatal("expected an error for non-2xx response")
	}
	if !strings.Contains(err.Error(), "invalid to address") {
		t.Errorf("error should carry the provider message, got %q", err.Error())
	}
}

func TestClientSendServerDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, "test-key", "reminders@example.com")

	if err := client.Send(context.Background(), "owner@example.com", "subject", "body"); err == nil {
		t.Fatal("expected a transport error")
	}
}
