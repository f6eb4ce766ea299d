package handballnet

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/valyala/bytebufferpool"
	"golang.org/x/net/html"
)

const defaultDiscoveryWorkers = 4

// DiscoverMatchIDs scrapes the given schedule pages for game anchors and
// returns the qualified match ids, sorted and deduplicated. A page that fails
// to load or parse is logged and skipped; the discovery only errors when the
// worker pool itself cannot be created.
func (c *Client) DiscoverMatchIDs(ctx context.Context, pageURLs []string, workers int) ([]string, error) {
	if len(pageURLs) == 0 {
		return nil, nil
	}
	if workers <= 0 {
		workers = defaultDiscoveryWorkers
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create discovery pool: %w", err)
	}
	defer pool.Release()

	var mu sync.Mutex
	seen := make(map[string]struct{})

	var wg sync.WaitGroup
	for _, pageURL := range pageURLs {
		pageURL := pageURL
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()

			ids, err := c.scrapePage(ctx, pageURL)
			if err != nil {
				c.logger.WarnContext(ctx, "discovery page skipped", "url", pageURL, "error", err)
				return
			}

			mu.Lock()
			for _, id := range ids {
				seen[id] = struct{}{}
			}
			mu.Unlock()
		}); err != nil {
			wg.Done()
			return nil, fmt.Errorf("submit discovery task: %w", err)
		}
	}
	wg.Wait()

	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)

	c.logger.InfoContext(ctx, "match discovery finished", "pages", len(pageURLs), "matches", len(out))
	return out, nil
}

func (c *Client) scrapePage(ctx context.Context, pageURL string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("user-agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("page status=%d", resp.StatusCode)
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if _, err := io.Copy(buf, io.LimitReader(resp.Body, maxResponseBytes)); err != nil {
		return nil, fmt.Errorf("read page body: %w", err)
	}

	return c.extractGameIDs(buf.Bytes()), nil
}

// extractGameIDs walks the HTML token stream and collects element ids shaped
// like a qualified game id, i.e. the provider prefix followed by digits.
func (c *Client) extractGameIDs(page []byte) []string {
	pattern := regexp.MustCompile(`^` + regexp.QuoteMeta(c.idPrefix) + `\d+$`)

	var ids []string
	tokenizer := html.NewTokenizer(bytes.NewReader(page))
	for {
		tokenType := tokenizer.Next()
		if tokenType == html.ErrorToken {
			return ids
		}
		if tokenType != html.StartTagToken && tokenType != html.SelfClosingTagToken {
			continue
		}
		for {
			key, value, more := tokenizer.TagAttr()
			if string(key) == "id" && pattern.Match(value) {
				ids = append(ids, string(value))
			}
			if !more {
				break
			}
		}
	}
}
