// Command diagnose_channels checks whether YouTube channel feeds are
// reachable and parseable. It takes channel IDs (or full feed URLs) as
// arguments, fetches each feed, and prints a report with the upload count,
// the latest upload date, and the response time.
//
// Usage:
//
//	go run scripts/diagnose_channels.go UCabc123 UCdef456
//	go run scripts/diagnose_channels.go -json UCabc123
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"tubescribe/internal/infra/channelfeed"
)

// ChannelDiagnostic is the result of probing one channel feed.
type ChannelDiagnostic struct {
	Input        string `json:"input"`
	FeedURL      string `json:"feed_url"`
	Status       string `json:"status"` // "OK", "ERROR", "EMPTY"
	ChannelTitle string `json:"channel_title,omitempty"`
	VideoCount   int    `json:"video_count"`
	LatestUpload string `json:"latest_upload,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
	ResponseTime int64  `json:"response_time_ms"`
}

func main() {
	jsonOut := flag.Bool("json", false, "emit the report as JSON")
	timeout := flag.Duration("timeout", 15*time.Second, "per-feed fetch timeout")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: diagnose_channels [-json] [-timeout 15s] <channel-id-or-feed-url> ...")
		os.Exit(2)
	}

	fetcher := channelfeed.NewFetcher(&http.Client{Timeout: *timeout})

	var diagnostics []ChannelDiagnostic
	for _, arg := range flag.Args() {
		diagnostics = append(diagnostics, diagnose(fetcher, arg, *timeout))
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(diagnostics); err != nil {
			fmt.Fprintf(os.Stderr, "encode report: %v\n", err)
			os.Exit(1)
		}
	} else {
		printReport(diagnostics)
	}

	exitCode(diagnostics)
}

// diagnose probes a single channel feed and classifies the outcome.
func diagnose(fetcher *channelfeed.Fetcher, input string, timeout time.Duration) ChannelDiagnostic {
	feedURL := input
	if !strings.HasPrefix(input, "http://") && !strings.HasPrefix(input, "https://") {
		feedURL = channelfeed.FeedURL(input)
	}

	d := ChannelDiagnostic{Input: input, FeedURL: feedURL}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	preview, err := fetcher.Fetch(ctx, feedURL)
	d.ResponseTime = time.Since(start).Milliseconds()

	if err != nil {
		d.Status = "ERROR"
		d.ErrorMessage = err.Error()
		return d
	}

	d.ChannelTitle = preview.ChannelTitle
	d.VideoCount = len(preview.Videos)

	if len(preview.Videos) == 0 {
		d.Status = "EMPTY"
		return d
	}

	d.Status = "OK"
	latest := preview.Videos[0].PublishedAt
	for _, v := range preview.Videos[1:] {
		if v.PublishedAt.After(latest) {
			latest = v.PublishedAt
		}
	}
	d.LatestUpload = latest.Format(time.RFC3339)
	return d
}

// printReport writes a human-readable summary to stdout.
func printReport(diagnostics []ChannelDiagnostic) {
	ok := 0
	for _, d := range diagnostics {
		if d.Status == "OK" {
			ok++
		}
	}

	fmt.Printf("Channel feed diagnostics: %d/%d OK\n\n", ok, len(diagnostics))
	for _, d := range diagnostics {
		fmt.Printf("[%s] %s (%dms)\n", d.Status, d.Input, d.ResponseTime)
		if d.ChannelTitle != "" {
			fmt.Printf("        channel: %s\n", d.ChannelTitle)
		}
		if d.Status == "OK" {
			fmt.Printf("        videos: %d, latest: %s\n", d.VideoCount, d.LatestUpload)
		}
		if d.ErrorMessage != "" {
			fmt.Printf("        error: %s\n", d.ErrorMessage)
		}
	}
}

// exitCode exits non-zero when any feed failed, so the script can gate CI
// or cron alerting.
func exitCode(diagnostics []ChannelDiagnostic) {
	for _, d := range diagnostics {
		if d.Status == "ERROR" {
			os.Exit(1)
		}
	}
	os.Exit(0)
}
