package main

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

var (
	globalTimeout int = 30
)

// sendRequest issues an outbound request bounded by timeout seconds, falling back to
// the TIMEOUT setting when none is passed.
func sendRequest(ctx context.Context, method, url string, headers map[string]string, body io.Reader, timeout ...int) (*http.Response, error) {
	t := globalTimeout
	if len(timeout) > 0 {
		t = timeout[0]
	}

	client := http.Client{
		Timeout: time.Duration(t) * time.Second,
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s failed: %w", method, url, err)
	}

	return resp, nil
}

// readBody drains and closes the response body, decompressing gzip payloads.
func readBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("error creating gzip reader: %w", err)
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	respBody, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return respBody, nil
}
