package wikipedia

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(serverURL string) *Client {
	return &Client{
		baseURL:    serverURL,
		httpClient: &http.Client{Timeout: time.Second},
		userAgent:  "test-agent",
	}
}

// fakeAPI answers both the search and pageimages actions of the
// MediaWiki API with canned JSON.
func fakeAPI(t *testing.T, titles map[string]string, thumbs map[string]string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		switch {
		case q.Get("list") == "search":
			if title, ok := titles[q.Get("srsearch")]; ok {
				fmt.Fprintf(w, `{"query":{"search":[{"title":%q}]}}`, title)
				return
			}
			fmt.Fprint(w, `{"query":{"search":[]}}`)
		case q.Get("prop") == "pageimages":
			if thumb, ok := thumbs[q.Get("titles")]; ok {
				fmt.Fprintf(w, `{"query":{"pages":{"1":{"thumbnail":{"source":%q}}}}}`, thumb)
				return
			}
			fmt.Fprint(w, `{"query":{"pages":{"1":{}}}}`)
		default:
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
	}
}

func TestClient_ImageFor(t *testing.T) {
	tests := []struct {
		name   string
		titles map[string]string
		thumbs map[string]string
		query  string
		want   string
	}{
		{
			name:   "search hit with thumbnail",
			titles: map[string]string{"Pena Palace monument": "Pena Palace"},
			thumbs: map[string]string{"Pena Palace": "https://upload.wikimedia.org/pena.jpg"},
			query:  "Pena Palace monument",
			want:   "https://upload.wikimedia.org/pena.jpg",
		},
		{
			name:  "no search results",
			query: "Nonexistent Place",
			want:  "",
		},
		{
			name:   "page without thumbnail",
			titles: map[string]string{"Obscure Spot": "Obscure Spot"},
			query:  "Obscure Spot",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(fakeAPI(t, tt.titles, tt.thumbs))
			defer server.Close()

			got, err := newTestClient(server.URL).ImageFor(context.Background(), tt.query)
			if err != nil {
				t.Fatalf("ImageFor error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("ImageFor = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClient_SearchTitle_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	if _, err := newTestClient(server.URL).SearchTitle(context.Background(), "anything"); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}
