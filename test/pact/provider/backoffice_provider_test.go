//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	pacttest "github.com/Apurer/shop-backoffice/test/pact"

	backofficeserver "github.com/Apurer/shop-backoffice/go"
	"github.com/Apurer/shop-backoffice/internal/app/api"
	"github.com/Apurer/shop-backoffice/internal/app/seed"
	catalogdomain "github.com/Apurer/shop-backoffice/internal/domains/catalog/domain"
	orderworkflows "github.com/Apurer/shop-backoffice/internal/domains/orders/adapters/workflows"
	platformobs "github.com/Apurer/shop-backoffice/internal/platform/observability"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

const owner int64 = 1

func TestBackofficeProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateCatalogBaseline: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			return nil, nil
		},
		pacttest.StateProductExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			services := app.reset(t)
			if setup {
				input := pacttest.ExampleProductPayload()
				image := input["imageUrl"].(string)
				_, err := services.Catalog.CreateProduct(context.Background(), owner, catalogdomain.Product{
					Name:        input["name"].(string),
					Description: input["description"].(string),
					Price:       input["price"].(float64),
					Cost:        input["cost"].(float64),
					Stock:       input["stock"].(int),
					ImageURL:    &image,
				})
				return nil, err
			}
			return nil, nil
		},
		pacttest.StateProductMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			return nil, nil
		},
		pacttest.StateDemoSeeded: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			services := app.reset(t)
			if setup {
				_, err := seed.Run(context.Background(), services.SeedTargets(), time.Now().UTC(), nil)
				return nil, err
			}
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
	})
	require.NoError(t, err)
}

// contractProviderApp serves a fresh in-memory stack after every reset.
type contractProviderApp struct {
	mu      sync.RWMutex
	handler http.Handler
	server  *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()
	app := &contractProviderApp{}
	app.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.mu.RLock()
		h := app.handler
		app.mu.RUnlock()
		h.ServeHTTP(w, r)
	}))
	t.Cleanup(app.server.Close)
	app.reset(t)
	return app
}

func (a *contractProviderApp) reset(t testing.TB) *api.Services {
	t.Helper()
	services, cleanup, err := api.BuildServices(context.Background(), api.Config{DemoOwnerID: owner}, platformobs.Noop(nil))
	require.NoError(t, err)
	t.Cleanup(cleanup)

	handlers := backofficeserver.ApiHandleFunctions{
		CatalogAPI:   backofficeserver.NewCatalogAPI(services.Catalog, owner),
		DiscountAPI:  backofficeserver.NewDiscountAPI(services.Discounts, owner, time.Now),
		OrderAPI:     backofficeserver.NewOrderAPI(services.Orders, orderworkflows.NewInlineOrderWorkflows(services.Orders), owner),
		AnalyticsAPI: backofficeserver.NewAnalyticsAPI(services.Analytics, owner, time.Now),
		UserAPI:      backofficeserver.NewUserAPI(services.Users, owner),
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router = backofficeserver.NewRouterWithGinEngine(router, handlers, backofficeserver.RouterOptions{})

	a.mu.Lock()
	a.handler = router
	a.mu.Unlock()
	return services
}
