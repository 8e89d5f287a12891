package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClient_Fetch(t *testing.T) {
	var gotPath, gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAgent = r.Header.Get("User-Agent")
		w.Write([]byte(samplePayload))
	}))
	defer server.Close()

	client := NewClient(server.URL, "genrss/test")
	body, err := client.Fetch(context.Background(), "b0abcdef")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if gotPath != "/b0abcdef.json" {
		t.Errorf("Expected request to /b0abcdef.json, got %s", gotPath)
	}
	if gotAgent != "genrss/test" {
		t.Errorf("Expected user agent 'genrss/test', got '%s'", gotAgent)
	}
	if !strings.Contains(string(body), "Front Row") {
		t.Error("Expected the payload body to be returned")
	}
}

func TestClient_FetchNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	if _, err := client.Fetch(context.Background(), "b0missing"); err == nil {
		t.Error("Expected an error for a 404 response")
	}
}

func TestClient_FetchConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, "")
	if _, err := client.Fetch(context.Background(), "b0abcdef"); err == nil {
		t.Error("Expected an error when the catalog is unreachable")
	}
}
