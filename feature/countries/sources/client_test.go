package sources

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(countriesURL, ratesURL string) *Client {
	return NewClient(Config{
		CountriesURL:   countriesURL,
		CountriesName:  "restcountries.com",
		RatesURL:       ratesURL,
		RatesName:      "open.er-api.com",
		TimeoutSeconds: 5,
		MaxBodyBytes:   1 << 20,
	}, nil)
}

func serve(status int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func requireSourceError(t *testing.T, err error, source string) {
	t.Helper()
	var se *SourceError
	require.True(t, errors.As(err, &se), "expected *SourceError, got %v", err)
	assert.Equal(t, source, se.Source)
}

func TestFetchCountries(t *testing.T) {
	srv := serve(http.StatusOK, `[
		{"name":"Nigeria","capital":"Abuja","region":"Africa","population":206139589,"flag":"https://flagcdn.com/ng.svg","currencies":[{"code":"NGN"}]},
		{"name":"Antarctica","region":"Polar","population":1000}
	]`)
	defer srv.Close()

	c := newTestClient(srv.URL, "")
	countries, err := c.FetchCountries(context.Background())
	require.NoError(t, err)
	require.Len(t, countries, 2)
	assert.Equal(t, "Nigeria", countries[0].Name)
	assert.Equal(t, "NGN", countries[0].Currencies[0].Code)
	assert.Empty(t, countries[1].Currencies)
}

func TestFetchCountries_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"error":"down"}`},
		{"not found", http.StatusNotFound, ``},
		{"object instead of array", http.StatusOK, `{"name":"Nigeria"}`},
		{"null body", http.StatusOK, `null`},
		{"invalid json", http.StatusOK, `[{"name":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serve(tt.status, tt.body)
			defer srv.Close()

			_, err := newTestClient(srv.URL, "").FetchCountries(context.Background())
			requireSourceError(t, err, "restcountries.com")
		})
	}
}

func TestFetchCountries_EmptyArray(t *testing.T) {
	srv := serve(http.StatusOK, `[]`)
	defer srv.Close()

	countries, err := newTestClient(srv.URL, "").FetchCountries(context.Background())
	require.NoError(t, err)
	assert.Empty(t, countries)
}

func TestFetchRates(t *testing.T) {
	srv := serve(http.StatusOK, `{"result":"success","base_code":"USD","rates":{"USD":1,"NGN":1600.23,"GHS":15.3421}}`)
	defer srv.Close()

	rates, err := newTestClient("", srv.URL).FetchRates(context.Background())
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1600.23").Equal(rates["NGN"]))
	assert.True(t, decimal.RequireFromString("15.3421").Equal(rates["GHS"]))
	assert.True(t, decimal.NewFromInt(1).Equal(rates["USD"]))
}

func TestFetchRates_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"missing rates", http.StatusOK, `{"result":"success"}`},
		{"null rates", http.StatusOK, `{"rates":null}`},
		{"bad gateway", http.StatusBadGateway, `oops`},
		{"non numeric rate", http.StatusOK, `{"rates":{"NGN":true}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serve(tt.status, tt.body)
			defer srv.Close()

			_, err := newTestClient("", srv.URL).FetchRates(context.Background())
			requireSourceError(t, err, "open.er-api.com")
		})
	}
}

func TestFetch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "")
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.FetchCountries(ctx)
	requireSourceError(t, err, "restcountries.com")
}

func TestFetch_Unreachable(t *testing.T) {
	srv := serve(http.StatusOK, `[]`)
	url := srv.URL
	srv.Close()

	_, err := newTestClient(url, "").FetchCountries(context.Background())
	requireSourceError(t, err, "restcountries.com")
}

func TestFetch_BodyTooLarge(t *testing.T) {
	srv := serve(http.StatusOK, `[`+strings.Repeat(`{"name":"x"},`, 200)+`{"name":"x"}]`)
	defer srv.Close()

	c := NewClient(Config{CountriesURL: srv.URL, CountriesName: "restcountries.com", TimeoutSeconds: 5, MaxBodyBytes: 64}, nil)
	_, err := c.FetchCountries(context.Background())
	requireSourceError(t, err, "restcountries.com")
	assert.Contains(t, err.Error(), "exceeds")
}

func TestConfig_Timeout(t *testing.T) {
	assert.Equal(t, 30*time.Second, Config{}.Timeout())
	assert.Equal(t, 3*time.Second, Config{TimeoutSeconds: 3}.Timeout())
}

func TestClient_SourceNames(t *testing.T) {
	c := newTestClient("http://countries.invalid", "http://rates.invalid")
	assert.Equal(t, "restcountries.com", c.CountriesSource())
	assert.Equal(t, "open.er-api.com", c.RatesSource())
}
