package eodhd

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGetQuote_ParsesResponse(t *testing.T) {
	ts := int64(1767225600)
	mockResp := map[string]interface{}{
		"code":      "AAPL.US",
		"timestamp": ts,
		"open":      242.10,
		"high":      245.50,
		"low":       241.80,
		"close":     244.25,
		"volume":    float64(5000000),
	}

	var capturedPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedPath = r.URL.Path
		if r.URL.Query().Get("api_token") != "test-key" {
			t.Errorf("expected api_token test-key, got %s", r.URL.Query().Get("api_token"))
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(mockResp)
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	stock, err := client.GetQuote(context.Background(), "AAPL.US")
	if err != nil {
		t.Fatalf("GetQuote failed: %v", err)
	}

	if capturedPath != "/real-time/AAPL.US" {
		t.Errorf("expected path /real-time/AAPL.US, got %s", capturedPath)
	}
	if stock.CurrentPrice != 244.25 {
		t.Errorf("expected current price 244.25, got %.2f", stock.CurrentPrice)
	}
	if stock.OpenPrice != 242.10 {
		t.Errorf("expected open 242.10, got %.2f", stock.OpenPrice)
	}
	if stock.Volume != 5000000 {
		t.Errorf("expected volume 5000000, got %d", stock.Volume)
	}
	if !stock.AsOf.Equal(time.Unix(ts, 0)) {
		t.Errorf("expected as_of %v, got %v", time.Unix(ts, 0), stock.AsOf)
	}
}

func TestGetQuote_StringNumbers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":"AAPL.US","open":"NA","close":"243.5","volume":1000}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	stock, err := client.GetQuote(context.Background(), "AAPL.US")
	if err != nil {
		t.Fatalf("GetQuote failed: %v", err)
	}
	if stock.CurrentPrice != 243.5 {
		t.Errorf("expected current price 243.5, got %.2f", stock.CurrentPrice)
	}
}

func TestGetHistory_OrdersOldestFirst(t *testing.T) {
	mockResp := []map[string]interface{}{
		{"date": "2026-08-01", "open": 100.0, "high": 101.0, "low": 99.0, "close": 100.5, "adjusted_close": 100.5, "volume": float64(1000)},
		{"date": "2026-08-02", "open": 100.5, "high": 102.0, "low": 100.0, "close": 101.5, "adjusted_close": 101.5, "volume": float64(1200)},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("order") != "a" {
			t.Errorf("expected ascending order, got %s", r.URL.Query().Get("order"))
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(mockResp)
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	bars, err := client.GetHistory(context.Background(), "AAPL.US", 30*24*time.Hour)
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}

	if len(bars) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(bars))
	}
	if !bars[0].Date.Before(bars[1].Date) {
		t.Errorf("expected bars ordered oldest first")
	}
	if bars[1].Close != 101.5 {
		t.Errorf("expected close 101.5, got %.2f", bars[1].Close)
	}
}

func TestFetchRecent_MapsArticles(t *testing.T) {
	mockResp := []map[string]interface{}{
		{
			"date":    "2026-08-20T10:30:00+00:00",
			"title":   "Apple announces record earnings",
			"content": "Apple reported strong quarterly results.",
			"link":    "https://example.com/apple",
		},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("s") != "AAPL.US" {
			t.Errorf("expected s=AAPL.US, got %s", r.URL.Query().Get("s"))
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(mockResp)
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	articles, err := client.FetchRecent(context.Background(), "AAPL.US", 10, 7)
	if err != nil {
		t.Fatalf("FetchRecent failed: %v", err)
	}

	if len(articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(articles))
	}
	if articles[0].Title != "Apple announces record earnings" {
		t.Errorf("unexpected title: %s", articles[0].Title)
	}
	if articles[0].Source != "EODHD" {
		t.Errorf("expected source EODHD, got %s", articles[0].Source)
	}
	if articles[0].Symbol != "AAPL.US" {
		t.Errorf("expected symbol AAPL.US, got %s", articles[0].Symbol)
	}
}

func TestGet_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("invalid token"))
	}))
	defer srv.Close()

	client := NewClient("bad-key", WithBaseURL(srv.URL))
	_, err := client.GetQuote(context.Background(), "AAPL.US")
	if err == nil {
		t.Fatal("expected error for 401 response")
	}

	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", apiErr.StatusCode)
	}
}
