package smoke

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/headcount/pkg/logger"
)

// HTTPClient wraps http.Client with a base URL and timeout.
type HTTPClient struct {
	client  *http.Client
	baseURL string
}

// newHTTPClient creates a new HTTP client with timeout.
func newHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Get performs a GET request and returns the status and body.
func (c *HTTPClient) Get(ctx context.Context, path string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return resp.StatusCode, body, nil
}

// GetJSON performs a GET request and decodes a 200 answer into v.
func (c *HTTPClient) GetJSON(ctx context.Context, path string, v interface{}) error {
	status, body, err := c.Get(ctx, path)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("GET %s: %d: %w", path, status, ErrUnexpectedStatus)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("GET %s: decode: %w", path, err)
	}
	return nil
}

// districtPath escapes a district name into its /districts/:name path.
func districtPath(name string) string {
	return "/districts/" + url.PathEscape(name)
}

// fetchDistricts fetches every district page concurrently using a worker pool and
// returns the number fetched and failed.
func fetchDistricts(ctx context.Context, config *Config, client *HTTPClient, names []string) (int, int) {
	log := logger.Get()
	log.Info(ctx, "fetching districts", logger.Int("districts", len(names)), logger.Int("workers", config.Workers))

	var (
		fetched int64
		failed  int64
	)

	nameChan := make(chan string, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range nameChan {
				if ctx.Err() != nil {
					atomic.AddInt64(&failed, 1)
					continue
				}
				if err := fetchDistrict(ctx, client, name); err != nil {
					atomic.AddInt64(&failed, 1)
					log.Warn(ctx, "district fetch failed", logger.String("district", name), logger.Error(err))
					continue
				}
				atomic.AddInt64(&fetched, 1)
				if config.Verbose {
					log.Debug(ctx, "district fetched", logger.String("district", name))
				}
			}
		}()
	}

	go func() {
		defer close(nameChan)
		for _, name := range names {
			select {
			case <-ctx.Done():
				return
			case nameChan <- name:
			}
		}
	}()

	wg.Wait()

	return int(atomic.LoadInt64(&fetched)), int(atomic.LoadInt64(&failed))
}

// fetchDistrict fetches one district page and checks it names the district asked for.
func fetchDistrict(ctx context.Context, client *HTTPClient, name string) error {
	var view districtView
	if err := client.GetJSON(ctx, districtPath(name), &view); err != nil {
		return err
	}
	if !strings.EqualFold(view.Name, name) {
		return fmt.Errorf("asked for %q, got %q: %w", name, view.Name, ErrVerification)
	}
	return nil
}
