package ghostpay

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/joseph001479/venda-hoje/internal/domain"
	"github.com/joseph001479/venda-hoje/internal/metrics"
	"github.com/joseph001479/venda-hoje/internal/model"
)

const (
	REQUEST_TIMEOUT   = 30 * time.Second
	MAX_DETAILS_CHARS = 200
	MAX_BODY_BYTES    = 1 << 20 // 1 MB

	NO_RESPONSE_DETAILS = "Sem resposta"
)

// Numbers are kept as json.Number so ids and amounts go back to the
// storefront exactly as the processor wrote them.
var json = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

var bufferPool = sync.Pool{
	New: func() interface{} { return &bytes.Buffer{} },
}

type Client struct {
	httpClient *http.Client

	URL       string
	basicAuth string
	companyID string
}

func NewClient(apiURL, basicAuth, companyID string) *Client {
	tr := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		IdleConnTimeout:     60 * time.Second,
		MaxIdleConns:        16,
		MaxIdleConnsPerHost: 16,
		ForceAttemptHTTP2:   true,
	}

	return &Client{
		httpClient: &http.Client{Transport: tr, Timeout: REQUEST_TIMEOUT},
		URL:        strings.TrimRight(apiURL, "/"),
		basicAuth:  basicAuth,
		companyID:  companyID,
	}
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("accept", "application/json")
	req.Header.Set("content-type", "application/json")
	req.Header.Set("authorization", "Basic "+c.basicAuth)
	if c.companyID != "" {
		req.Header.Set("Company-ID", c.companyID)
	}
}

// CreateTransaction posts a PIX transaction. 200 and 201 return the decoded
// body; any other status becomes a *domain.UpstreamError.
func (c *Client) CreateTransaction(ctx context.Context, payload *model.ProcessorPaymentRequest) (model.ProcessorTransaction, error) {
	const operation = "create_transaction"
	start := time.Now()
	defer func() { metrics.UpstreamDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds()) }()

	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bufferPool.Put(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, buf)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	status, body, err := c.do(req)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(operation, metrics.OutcomeError).Inc()
		slog.Error("[RP:GhostPay:CreateTransaction:01] - Request failed", "error", err)
		return nil, err
	}

	if status != http.StatusOK && status != http.StatusCreated {
		metrics.UpstreamRequests.WithLabelValues(operation, metrics.OutcomeRejected).Inc()
		slog.Warn("[RP:GhostPay:CreateTransaction:02] - Processor rejected transaction", "status", status)
		return nil, &domain.UpstreamError{StatusCode: status, Details: details(body)}
	}

	tx, err := decode(body)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(operation, metrics.OutcomeError).Inc()
		slog.Error("[RP:GhostPay:CreateTransaction:03] - Failed to decode response", "error", err)
		return nil, err
	}

	metrics.UpstreamRequests.WithLabelValues(operation, metrics.OutcomeOK).Inc()
	slog.Debug("[RP:GhostPay:CreateTransaction:04] - Transaction created", "id", tx.Get("id"), "status", tx.Get("status"))
	return tx, nil
}

// GetTransaction fetches a transaction by id. Anything but 200 is reported
// as domain.ErrNotFound.
func (c *Client) GetTransaction(ctx context.Context, transactionID string) (model.ProcessorTransaction, error) {
	const operation = "get_transaction"
	start := time.Now()
	defer func() { metrics.UpstreamDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds()) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL+"/"+url.PathEscape(transactionID), nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	status, body, err := c.do(req)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(operation, metrics.OutcomeError).Inc()
		slog.Error("[RP:GhostPay:GetTransaction:01] - Request failed", "transaction_id", transactionID, "error", err)
		return nil, err
	}

	if status != http.StatusOK {
		metrics.UpstreamRequests.WithLabelValues(operation, metrics.OutcomeRejected).Inc()
		slog.Warn("[RP:GhostPay:GetTransaction:02] - Transaction not found", "transaction_id", transactionID, "status", status)
		return nil, domain.ErrNotFound
	}

	tx, err := decode(body)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(operation, metrics.OutcomeError).Inc()
		slog.Error("[RP:GhostPay:GetTransaction:03] - Failed to decode response", "transaction_id", transactionID, "error", err)
		return nil, err
	}

	metrics.UpstreamRequests.WithLabelValues(operation, metrics.OutcomeOK).Inc()
	return tx, nil
}

func (c *Client) do(req *http.Request) (int, []byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MAX_BODY_BYTES))
	if err != nil {
		return 0, nil, fmt.Errorf("read body: %w", err)
	}
	return resp.StatusCode, body, nil
}

func decode(body []byte) (model.ProcessorTransaction, error) {
	var tx model.ProcessorTransaction
	if err := json.Unmarshal(body, &tx); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if tx == nil {
		tx = model.ProcessorTransaction{}
	}
	return tx, nil
}

// details returns the first MAX_DETAILS_CHARS characters of an error body.
func details(body []byte) string {
	if len(body) == 0 {
		return NO_RESPONSE_DETAILS
	}
	runes := []rune(string(body))
	if len(runes) > MAX_DETAILS_CHARS {
		runes = runes[:MAX_DETAILS_CHARS]
	}
	return string(runes)
}
