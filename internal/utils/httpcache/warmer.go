package httpcache

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// Warmer pre-fetches URLs so their responses are hot in any intermediary
// cache. It holds a queue of one-off URLs plus a fixed popular set, and is
// constructed once at process start and injected where needed.
type Warmer struct {
	client  *http.Client
	logger  *slog.Logger
	popular []string

	mu    sync.Mutex
	queue []string
}

// NewWarmer creates a warmer. A nil client gets a default with a short
// timeout; warming is best-effort and must never hang shutdown.
func NewWarmer(client *http.Client, logger *slog.Logger, popular []string) *Warmer {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Warmer{client: client, logger: logger, popular: popular}
}

// Enqueue appends a URL to the warming queue.
func (w *Warmer) Enqueue(url string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.queue = append(w.queue, url)
}

// QueueLen reports the number of URLs waiting to be warmed.
func (w *Warmer) QueueLen() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.queue)
}

// WarmPopular enqueues the fixed popular URL set and drains the queue.
func (w *Warmer) WarmPopular(ctx context.Context) int {
	for _, url := range w.popular {
		w.Enqueue(url)
	}
	return w.Warm(ctx)
}

// Warm drains the queue, fetching each URL once. Individual failures are
// logged and swallowed; warming is advisory and never propagates errors.
// Returns the number of successful fetches.
func (w *Warmer) Warm(ctx context.Context) int {
	w.mu.Lock()
	pending := w.queue
	w.queue = nil
	w.mu.Unlock()

	warmed := 0
	for _, url := range pending {
		if err := w.fetch(ctx, url); err != nil {
			w.logger.Warn("cache warm fetch failed", slog.String("url", url), slog.String("error", err.Error()))
			continue
		}
		warmed++
	}
	return warmed
}

func (w *Warmer) fetch(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}
