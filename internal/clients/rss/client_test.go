package rss

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const feedTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel>
<title>Test Feed</title>
<item>
  <title>%s</title>
  <link>https://example.com/article</link>
  <description>Some summary text.</description>
  <pubDate>%s</pubDate>
</item>
</channel></rss>`

func TestFetchRecent_ParsesFeed(t *testing.T) {
	pub := time.Now().Add(-2 * time.Hour).Format(time.RFC1123Z)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprintf(w, feedTemplate, "Apple hits new high", pub)
	}))
	defer srv.Close()

	client := NewClient(WithFeeds([]Feed{{Name: "Test Feed", URL: srv.URL + "?s=%s"}}))
	articles, err := client.FetchRecent(context.Background(), "AAPL.US", 10, 7)
	if err != nil {
		t.Fatalf("FetchRecent failed: %v", err)
	}

	if len(articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(articles))
	}
	if articles[0].Title != "Apple hits new high" {
		t.Errorf("unexpected title: %s", articles[0].Title)
	}
	if articles[0].Source != "Test Feed" {
		t.Errorf("expected source Test Feed, got %s", articles[0].Source)
	}
	if articles[0].Symbol != "AAPL.US" {
		t.Errorf("expected symbol AAPL.US, got %s", articles[0].Symbol)
	}
}

func TestFetchRecent_SkipsStaleArticles(t *testing.T) {
	pub := time.Now().AddDate(0, 0, -30).Format(time.RFC1123Z)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, feedTemplate, "Old news", pub)
	}))
	defer srv.Close()

	client := NewClient(WithFeeds([]Feed{{Name: "Test Feed", URL: srv.URL + "?s=%s"}}))
	articles, err := client.FetchRecent(context.Background(), "AAPL", 10, 7)
	if err != nil {
		t.Fatalf("FetchRecent failed: %v", err)
	}
	if len(articles) != 0 {
		t.Errorf("expected 0 articles, got %d", len(articles))
	}
}

func TestFetchRecent_AllFeedsFailing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(WithFeeds([]Feed{{Name: "Broken", URL: srv.URL + "?s=%s"}}))
	_, err := client.FetchRecent(context.Background(), "AAPL", 10, 7)
	if err == nil {
		t.Fatal("expected error when every feed fails")
	}
}

func TestFetchRecent_PartialFailureStillSucceeds(t *testing.T) {
	pub := time.Now().Format(time.RFC1123Z)
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, feedTemplate, "Working feed article", pub)
	}))
	defer good.Close()
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer bad.Close()

	client := NewClient(WithFeeds([]Feed{
		{Name: "Bad", URL: bad.URL + "?s=%s"},
		{Name: "Good", URL: good.URL + "?s=%s"},
	}))
	articles, err := client.FetchRecent(context.Background(), "AAPL", 10, 7)
	if err != nil {
		t.Fatalf("FetchRecent failed: %v", err)
	}
	if len(articles) != 1 {
		t.Errorf("expected 1 article from surviving feed, got %d", len(articles))
	}
}

func TestSplitPublisher(t *testing.T) {
	title, source := splitPublisher("Apple beats estimates - Reuters", "Google News")
	if title != "Apple beats estimates" {
		t.Errorf("unexpected title: %s", title)
	}
	if source != "Reuters (via Google News)" {
		t.Errorf("unexpected source: %s", source)
	}

	title, source = splitPublisher("Plain headline", "Yahoo Finance")
	if title != "Plain headline" || source != "Yahoo Finance" {
		t.Errorf("expected passthrough, got %q / %q", title, source)
	}
}
