package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ichikawacraice/dt-money/internal/domain/entity"
	"github.com/ichikawacraice/dt-money/internal/domain/repository"
	"github.com/ichikawacraice/dt-money/internal/infrastructure/logger"
)

const transactionsPath = "/transactions"

// TransactionsAPIClient stores transactions in a remote json-server style REST API.
// Requests are made once; failures are returned to the caller.
type TransactionsAPIClient struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
}

// NewTransactionsAPIClient creates a new client for the API rooted at baseURL
func NewTransactionsAPIClient(baseURL string, httpClient *http.Client, log logger.Logger) *TransactionsAPIClient {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 10 * time.Second,
		}
	}
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &TransactionsAPIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     log,
	}
}

// StatusError is returned when the API answers with a non-2xx status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API returned error status: %d, body: %s", e.StatusCode, e.Body)
}

// Store posts the transaction and returns the ID the API assigned
func (c *TransactionsAPIClient) Store(ctx context.Context, tx *entity.Transaction) (string, error) {
	payload, err := json.Marshal(tx)
	if err != nil {
		return "", fmt.Errorf("failed to marshal transaction: %w", err)
	}

	var created entity.Transaction
	if err := c.do(ctx, http.MethodPost, c.baseURL+transactionsPath, bytes.NewReader(payload), &created); err != nil {
		return "", fmt.Errorf("failed to store transaction: %w", err)
	}

	if created.ID == "" {
		return tx.ID, nil
	}
	return created.ID, nil
}

// FindByID retrieves a transaction by its unique identifier
func (c *TransactionsAPIClient) FindByID(ctx context.Context, id string) (*entity.Transaction, error) {
	var tx entity.Transaction

	err := c.do(ctx, http.MethodGet, c.baseURL+transactionsPath+"/"+url.PathEscape(id), nil, &tx)
	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", repository.ErrTransactionNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve transaction: %w", err)
	}

	return &tx, nil
}

// List asks the API for the transactions matching the query, newest first
func (c *TransactionsAPIClient) List(ctx context.Context, query entity.SearchQuery) ([]entity.Transaction, error) {
	params := url.Values{}
	params.Set("_sort", "createdAt")
	params.Set("_order", "desc")
	if q := strings.TrimSpace(query.Query); q != "" {
		params.Set("q", q)
	}

	list := []entity.Transaction{}
	if err := c.do(ctx, http.MethodGet, c.baseURL+transactionsPath+"?"+params.Encode(), nil, &list); err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return list, nil
}

func (c *TransactionsAPIClient) do(ctx context.Context, method, reqURL string, body io.Reader, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("Transactions API request", map[string]interface{}{
		"method": method,
		"url":    reqURL,
	})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}

	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn("Error closing response body", map[string]interface{}{
				"error": closeErr.Error(),
			})
		}
	}()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug("Transactions API response", map[string]interface{}{
		"method": method,
		"url":    reqURL,
		"status": resp.StatusCode,
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode, Body: string(bodyBytes)}
	}

	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
