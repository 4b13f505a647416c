package fxblue

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Fetch downloads a published account CSV feed and parses it. The feed's
// banner line is handled by ReadCSV.
func Fetch(ctx context.Context, url string) (Table, error) {
	client := &http.Client{Timeout: 30 * time.Second}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Table{}, err
	}

	res, err := client.Do(req)
	if err != nil {
		return Table{}, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 8<<10))
		return Table{}, fmt.Errorf("fetch %s: http %d: %s", url, res.StatusCode, strings.TrimSpace(string(b)))
	}

	t, err := ReadCSV(res.Body)
	if err != nil {
		return Table{}, fmt.Errorf("fetch %s: %w", url, err)
	}
	return t, nil
}
