package nominatim

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(serverURL string) *Client {
	return &Client{
		baseURL:     serverURL,
		httpClient:  &http.Client{Timeout: time.Second},
		userAgent:   "test-agent",
		countryCode: "pt",
	}
}

func TestClient_Geocode(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		wantLat  float64
		wantLng  float64
		wantMiss bool
		wantErr  bool
	}{
		{
			name: "first result parsed",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode([]searchResult{
					{Lat: "38.7972", Lon: "-9.3906", DisplayName: "Sintra"},
					{Lat: "0", Lon: "0", DisplayName: "ignored"},
				})
			},
			wantLat: 38.7972,
			wantLng: -9.3906,
		},
		{
			name: "zero results is a miss, not an error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode([]searchResult{})
			},
			wantMiss: true,
		},
		{
			name: "non-200 status is an error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "slow down", http.StatusTooManyRequests)
			},
			wantErr: true,
		},
		{
			name: "malformed body is an error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("<html>not json</html>"))
			},
			wantErr: true,
		},
		{
			name: "unparseable coordinate is an error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode([]searchResult{{Lat: "not-a-number", Lon: "0"}})
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			coords, err := newTestClient(server.URL).Geocode(context.Background(), "Cabo da Roca", "Portugal")
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got coords=%v", coords)
				}
				return
			}
			if err != nil {
				t.Fatalf("Geocode error: %v", err)
			}
			if tt.wantMiss {
				if coords != nil {
					t.Fatalf("expected nil coords for miss, got %v", coords)
				}
				return
			}
			if coords == nil {
				t.Fatal("expected coords, got nil")
			}
			if coords.Lat != tt.wantLat || coords.Lng != tt.wantLng {
				t.Fatalf("got (%f, %f), want (%f, %f)", coords.Lat, coords.Lng, tt.wantLat, tt.wantLng)
			}
		})
	}
}

func TestClient_Geocode_QueryParams(t *testing.T) {
	var got map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		got = map[string]string{
			"q":            q.Get("q"),
			"format":       q.Get("format"),
			"limit":        q.Get("limit"),
			"countrycodes": q.Get("countrycodes"),
			"user-agent":   r.Header.Get("User-Agent"),
		}
		_ = json.NewEncoder(w).Encode([]searchResult{{Lat: "1", Lon: "2"}})
	}))
	defer server.Close()

	if _, err := newTestClient(server.URL).Geocode(context.Background(), "Pena Palace", "Sintra"); err != nil {
		t.Fatalf("Geocode error: %v", err)
	}

	want := map[string]string{
		"q":            "Pena Palace, Sintra",
		"format":       "json",
		"limit":        "1",
		"countrycodes": "pt",
		"user-agent":   "test-agent",
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("param %s = %q, want %q", k, got[k], v)
		}
	}
}
