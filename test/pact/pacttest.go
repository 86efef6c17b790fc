//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "shop-backoffice-api"
	ConsumerName = "backoffice-dashboard"

	StateCatalogBaseline = "catalog baseline"
	StateProductExists   = "product with id 1 exists"
	StateProductMissing  = "no product with id 404"
	StateDemoSeeded      = "demo data seeded"
)

const (
	ExistingProductID int64 = 1
	MissingProductID  int64 = 404
)

const (
	exampleProductName  = "Premium Headphones"
	exampleProductImage = "https://example.pact/products/headphones.png"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the dashboard consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleProductPayload is the create payload the dashboard sends.
func ExampleProductPayload() map[string]any {
	return map[string]any{
		"name":        exampleProductName,
		"description": "High quality headphones",
		"price":       159.0,
		"cost":        80.0,
		"stock":       25,
		"imageUrl":    exampleProductImage,
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
