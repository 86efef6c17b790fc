//go:build pact
// +build pact

package consumer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	pacttest "github.com/Apurer/shop-backoffice/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

type productPayload struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Stock  int     `json:"stock"`
	Source string  `json:"source"`
}

type dashboardPayload struct {
	Stats struct {
		TotalRevenue   float64 `json:"totalRevenue"`
		TotalCustomers int     `json:"totalCustomers"`
	} `json:"stats"`
	ProductCountsByCategory []struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	} `json:"productCountsByCategory"`
}

type problemDetail struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

type apiError struct {
	status int
	title  string
	detail string
}

func (e apiError) Error() string {
	msg := e.title
	if msg == "" {
		msg = "api error"
	}
	if e.detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.detail)
	}
	return fmt.Sprintf("%s (status %d)", msg, e.status)
}

func (e apiError) Status() int {
	return e.status
}

func TestDashboardContract(t *testing.T) {
	t.Helper()
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	input := pacttest.ExampleProductPayload()
	productMatcher := matchers.Map{
		"id":          matchers.Like(pacttest.ExistingProductID),
		"name":        matchers.Like(input["name"]),
		"description": matchers.Like(input["description"]),
		"price":       matchers.Like(input["price"]),
		"cost":        matchers.Like(input["cost"]),
		"stock":       matchers.Like(input["stock"]),
		"imageUrl":    matchers.Like(input["imageUrl"]),
		"source":      matchers.Term("manual", "manual|facebook|instagram|whatsapp"),
		"userId":      matchers.Like(1),
	}
	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")

	pact.AddInteraction().
		Given(pacttest.StateCatalogBaseline).
		UponReceiving("a request to create a product").
		WithRequest("POST", "/api/products", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(input)
		}).
		WillRespondWith(http.StatusCreated, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(productMatcher)
		})

	pact.AddInteraction().
		Given(pacttest.StateProductExists).
		UponReceiving("a request to fetch an existing product").
		WithRequest("GET", fmt.Sprintf("/api/products/%d", pacttest.ExistingProductID)).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(productMatcher)
		})

	pact.AddInteraction().
		Given(pacttest.StateProductMissing).
		UponReceiving("a request for a missing product").
		WithRequest("GET", fmt.Sprintf("/api/products/%d", pacttest.MissingProductID)).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/problem+json"))
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/not-found"),
				"title":  matchers.S("Resource Not Found"),
				"status": matchers.Like(http.StatusNotFound),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateDemoSeeded).
		UponReceiving("a request for the dashboard").
		WithRequest("GET", "/api/analytics/dashboard").
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"stats": matchers.Map{
					"totalRevenue":   matchers.Like(737.0),
					"totalProfit":    matchers.Like(351.0),
					"totalCustomers": matchers.Like(4),
					"activeProducts": matchers.Like(4),
				},
				"productCountsByCategory": matchers.ArrayMinLike(matchers.Map{
					"categoryId": matchers.Like(1),
					"name":       matchers.Like("Footwear"),
					"count":      matchers.Like(1),
				}, 1),
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newBackofficeClient(config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var created productPayload
		if err := client.do(ctx, http.MethodPost, "/api/products", input, &created); err != nil {
			return fmt.Errorf("create product: %w", err)
		}
		if created.ID == 0 {
			return fmt.Errorf("expected created product ID to be set")
		}

		var fetched productPayload
		if err := client.do(ctx, http.MethodGet, fmt.Sprintf("/api/products/%d", pacttest.ExistingProductID), nil, &fetched); err != nil {
			return fmt.Errorf("get product: %w", err)
		}
		if fetched.ID != pacttest.ExistingProductID {
			return fmt.Errorf("expected product id %d, got %+v", pacttest.ExistingProductID, fetched)
		}

		err := client.do(ctx, http.MethodGet, fmt.Sprintf("/api/products/%d", pacttest.MissingProductID), nil, &fetched)
		if err == nil {
			return fmt.Errorf("expected 404 for product %d", pacttest.MissingProductID)
		} else if apiErr, ok := err.(apiError); ok && apiErr.Status() != http.StatusNotFound {
			return fmt.Errorf("expected 404, got %d", apiErr.Status())
		}

		var dash dashboardPayload
		if err := client.do(ctx, http.MethodGet, "/api/analytics/dashboard", nil, &dash); err != nil {
			return fmt.Errorf("dashboard: %w", err)
		}
		if len(dash.ProductCountsByCategory) == 0 {
			return fmt.Errorf("expected category counts on the dashboard")
		}
		return nil
	})
	require.NoError(t, err)
}

type backofficeClient struct {
	baseURL    string
	httpClient *http.Client
}

func newBackofficeClient(config pactconsumer.MockServerConfig) *backofficeClient {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	client := &http.Client{Transport: transport, Timeout: 10 * time.Second}
	return &backofficeClient{
		baseURL:    fmt.Sprintf("http://%s:%d", host, config.Port),
		httpClient: client,
	}
}

func (c *backofficeClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}
	var req *http.Request
	var err error
	if reader != nil {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	}
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(res)
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func decodeAPIError(res *http.Response) error {
	var problem problemDetail
	_ = json.NewDecoder(res.Body).Decode(&problem)
	status := problem.Status
	if status == 0 {
		status = res.StatusCode
	}
	return apiError{
		status: status,
		title:  problem.Title,
		detail: problem.Detail,
	}
}
