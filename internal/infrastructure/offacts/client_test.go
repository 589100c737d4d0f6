package offacts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/scanlens/backend/internal/domain"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func newTestEngine(baseURL string, category domain.ProductCategory) *Engine {
	return New(Options{
		Name:     "openfoodfacts",
		BaseURL:  baseURL,
		Priority: 1,
		Category: category,
	}, &http.Client{}, testLogger())
}

func TestSupports(t *testing.T) {
	e := newTestEngine("https://example.com", domain.CategoryFood)

	assert.True(t, e.Supports("3017620422003"))
	assert.True(t, e.Supports("01234567"))
	assert.False(t, e.Supports("080442957X"))
	assert.False(t, e.Supports("1234"))
}

func TestLookup_Found(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/product/3017620422003.json", r.URL.Path)
		assert.Contains(t, r.Header.Get("User-Agent"), "ScanLens")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": 1,
			"product": {
				"product_name": "Nutella",
				"brands": "Ferrero",
				"image_url": "http://images.openfoodfacts.org/nutella.jpg",
				"quantity": "400 g",
				"ingredients": [{"text": "Sugar"}, {"text": "Palm oil"}, {"text": "Hazelnuts"}],
				"allergens_tags": ["en:milk", "en:nuts"],
				"nutriscore_grade": "e",
				"nutriments": {"energy-kcal_100g": 539.0},
				"some_future_field": {"ignored": true}
			}
		}`))
	}))
	defer server.Close()

	e := newTestEngine(server.URL, domain.CategoryFood)
	result := e.Lookup(context.Background(), "3017620422003")

	require.Equal(t, domain.StatusFound, result.Status)
	require.NotNil(t, result.Product)
	assert.Equal(t, "openfoodfacts", result.Product.Source)
	assert.Equal(t, domain.CategoryFood, result.Product.Category)
	require.NotNil(t, result.Product.Name)
	assert.Equal(t, "Nutella", *result.Product.Name)
	require.NotNil(t, result.Product.ImageURL)
	assert.Equal(t, "https://images.openfoodfacts.org/nutella.jpg", *result.Product.ImageURL)
	require.NotNil(t, result.Product.Food)
	assert.Equal(t, []string{"Sugar", "Palm oil", "Hazelnuts"}, result.Product.Food.Ingredients)
	assert.Equal(t, []string{"milk", "nuts"}, result.Product.Food.Allergens)
	assert.NoError(t, result.Product.Validate())
}

func TestLookup_StatusZeroIsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": 0, "status_verbose": "product not found"}`))
	}))
	defer server.Close()

	e := newTestEngine(server.URL, domain.CategoryFood)
	result := e.Lookup(context.Background(), "00000000000")

	assert.Equal(t, domain.StatusNotFound, result.Status)
	assert.Nil(t, result.Product)
	assert.NoError(t, result.Err)
}

func TestLookup_HTTP404IsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	e := newTestEngine(server.URL, domain.CategoryFood)
	result := e.Lookup(context.Background(), "00000000000")

	assert.Equal(t, domain.StatusNotFound, result.Status)
}

func TestLookup_ServerErrorIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	e := newTestEngine(server.URL, domain.CategoryFood)
	result := e.Lookup(context.Background(), "3017620422003")

	assert.Equal(t, domain.StatusError, result.Status)
	assert.ErrorIs(t, result.Err, domain.ErrUpstreamFailure)
}

func TestLookup_MalformedPayloadIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": `))
	}))
	defer server.Close()

	e := newTestEngine(server.URL, domain.CategoryFood)
	result := e.Lookup(context.Background(), "3017620422003")

	assert.Equal(t, domain.StatusError, result.Status)
	assert.ErrorIs(t, result.Err, domain.ErrMalformedPayload)
}

func TestLookup_TransportFailureIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	e := newTestEngine(server.URL, domain.CategoryFood)
	result := e.Lookup(context.Background(), "3017620422003")

	assert.Equal(t, domain.StatusError, result.Status)
	assert.ErrorIs(t, result.Err, domain.ErrUpstreamFailure)
}

func TestLookup_NormalizesBarcodeInRequestPath(t *testing.T) {
	var requestedPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		w.Write([]byte(`{"status": 0}`))
	}))
	defer server.Close()

	e := newTestEngine(server.URL, domain.CategoryFood)
	e.Lookup(context.Background(), "3017620-422003")

	assert.Equal(t, "/api/v2/product/3017620422003.json", requestedPath)
}
