package vtex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"runtime"
	"strconv"
	"sync"
	"time"
	"vtexreport/entity"
	"vtexreport/lib/sl"
)

const pageSize = 100

type Config struct {
	BaseUrl    string
	AppKey     string
	AppToken   string
	Timeout    time.Duration
	MaxWorkers int
}

type Client struct {
	hc         *http.Client
	baseUrl    string
	appKey     string
	appToken   string
	maxWorkers int
	log        *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	workers := cfg.MaxWorkers
	if workers <= 0 {
		workers = defaultMaxWorkers()
	}
	return &Client{
		hc:         &http.Client{Timeout: timeout},
		baseUrl:    cfg.BaseUrl,
		appKey:     cfg.AppKey,
		appToken:   cfg.AppToken,
		maxWorkers: workers,
		log:        logger.With(sl.Module("vtex")),
	}
}

func defaultMaxWorkers() int {
	w := 4 * runtime.GOMAXPROCS(0)
	if w > 32 {
		w = 32
	}
	return w
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-VTEX-API-AppKey", c.appKey)
	req.Header.Set("X-VTEX-API-AppToken", c.appToken)
}

// ListInvoicedOrders pages through the OMS list endpoint for orders of the
// seller invoiced inside the window. Fetching is best effort: a transport
// error or non-200 status ends pagination and whatever was accumulated so
// far is returned, so callers cannot tell "end of data" from an upstream
// failure other than by the Warn log.
func (c *Client) ListInvoicedOrders(ctx context.Context, startUTC, endUTC, sellerName string) []entity.OrderSummary {
	log := c.log.With(slog.String("seller", sellerName))

	var orders []entity.OrderSummary
	for page := 1; ; page++ {
		q := url.Values{}
		q.Set("page", strconv.Itoa(page))
		q.Set("per_page", strconv.Itoa(pageSize))
		q.Set("f_status", "invoiced")
		q.Set("f_sellerNames", sellerName)
		q.Set("f_invoicedDate", fmt.Sprintf("invoicedDate:[%s TO %s]", startUTC, endUTC))
		endpoint := fmt.Sprintf("%s/api/oms/pvt/orders?%s", c.baseUrl, q.Encode())

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			log.Error("create list request", sl.Err(err))
			break
		}
		c.setHeaders(req)

		t1 := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			log.Warn("list request failed, pagination stopped",
				slog.Int("page", page),
				sl.Err(err))
			break
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			log.Warn("list request returned error status, pagination stopped",
				slog.Int("page", page),
				slog.String("status", resp.Status))
			break
		}

		var res entity.OrderList
		if err = json.Unmarshal(body, &res); err != nil {
			log.Warn("parse list response, pagination stopped",
				slog.Int("page", page),
				sl.Err(err))
			break
		}
		log.With(
			slog.Int("page", page),
			slog.Int("count", len(res.List)),
			sl.Duration(time.Since(t1)),
		).Debug("order page fetched")

		if len(res.List) == 0 {
			break
		}
		orders = append(orders, res.List...)
		if len(res.List) < pageSize {
			break
		}
	}
	return orders
}

// Detail fetches one full order record.
func (c *Client) Detail(ctx context.Context, orderId string) (*entity.OrderDetail, error) {
	endpoint := fmt.Sprintf("%s/api/oms/pvt/orders/%s", c.baseUrl, orderId)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("order %s: %s", orderId, resp.Status)
	}
	var detail entity.OrderDetail
	if err = json.Unmarshal(body, &detail); err != nil {
		return nil, fmt.Errorf("order %s: %w", orderId, err)
	}
	return &detail, nil
}

// FetchDetails retrieves full order records with a bounded worker pool.
// A failed fetch leaves its id out of the result map; siblings keep
// running, there is no retry and no early abort.
func (c *Client) FetchDetails(ctx context.Context, ids []string) map[string]*entity.OrderDetail {
	type result struct {
		id     string
		detail *entity.OrderDetail
	}

	workers := c.maxWorkers
	if workers > len(ids) {
		workers = len(ids)
	}

	jobs := make(chan string)
	results := make(chan result)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range jobs {
				detail, err := c.Detail(ctx, id)
				if err != nil {
					c.log.Warn("order detail skipped",
						slog.String("order", id),
						sl.Err(err))
					results <- result{id: id}
					continue
				}
				results <- result{id: id, detail: detail}
			}
		}()
	}
	go func() {
		for _, id := range ids {
			jobs <- id
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	details := make(map[string]*entity.OrderDetail, len(ids))
	for r := range results {
		if r.detail != nil {
			details[r.id] = r.detail
		}
	}
	return details
}
