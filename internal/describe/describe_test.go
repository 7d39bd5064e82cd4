package describe

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type requestBody struct {
	Contents []struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"contents"`
}

func newTestClient(t *testing.T, apiKey, baseURL string) *Client {
	t.Helper()
	client, err := New(context.Background(), Options{APIKey: apiKey, Model: "gemini-test", BaseURL: baseURL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestDescribeDisabledWithoutKey(t *testing.T) {
	client := newTestClient(t, "", "")
	if client.Enabled() {
		t.Fatal("expected disabled client")
	}
	if _, err := client.Describe(context.Background(), "Notion", "https://notion.so"); err != ErrDisabled {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}

	var nilClient *Client
	if nilClient.Enabled() {
		t.Fatal("nil client reported enabled")
	}
}

func TestDescribeParsesFirstCandidate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/models/gemini-test:generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "secret" {
			t.Errorf("api key not sent in header")
		}
		if r.URL.Query().Get("key") != "" {
			t.Errorf("api key leaked into the query string")
		}

		var body requestBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(body.Contents) != 1 || len(body.Contents[0].Parts) == 0 || !strings.Contains(body.Contents[0].Parts[0].Text, "Site Name: Notion") {
			t.Errorf("unexpected prompt %+v", body)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"  A workspace for notes.  "}]}}]}`))
	}))
	defer server.Close()

	client := newTestClient(t, "secret", server.URL+"/")
	text, err := client.Describe(context.Background(), "Notion", "https://notion.so")
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	if text != "A workspace for notes." {
		t.Fatalf("unexpected description %q", text)
	}
}

func TestDescribeErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "status", status: http.StatusBadRequest, body: `{"error":{"code":400,"message":"bad","status":"INVALID_ARGUMENT"}}`},
		{name: "no candidates", status: http.StatusOK, body: `{"candidates":[]}`},
		{name: "empty text", status: http.StatusOK, body: `{"candidates":[{"content":{"parts":[{"text":" "}]}}]}`},
		{name: "bad json", status: http.StatusOK, body: `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newTestClient(t, "k-123456", server.URL+"/")
			if _, err := client.Describe(context.Background(), "x", "https://x.test"); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestDescribeErrorNeverContainsKey(t *testing.T) {
	const key = "SECRET-KEY-123"
	client := newTestClient(t, key, "http://127.0.0.1:1/")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := client.Describe(ctx, "Notion", "https://notion.so")
	if err == nil {
		t.Fatal("expected error for unreachable endpoint")
	}
	if strings.Contains(err.Error(), key) {
		t.Fatalf("error leaks the api key: %v", err)
	}
}

func TestRedact(t *testing.T) {
	client := &Client{apiKey: "abc123"}
	err := client.redact(errNoContent)
	if err != errNoContent {
		t.Fatalf("unrelated error was rewritten: %v", err)
	}

	rewritten := client.redact(errString("Post http://x/?key=abc123: refused"))
	if strings.Contains(rewritten.Error(), "abc123") || !strings.Contains(rewritten.Error(), "[redacted]") {
		t.Fatalf("key not redacted: %v", rewritten)
	}
}

type errString string

func (e errString) Error() string { return string(e) }
