package reconcile

import (
	"testing"

	"country-exchange/feature/countries/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func nigeria() models.RawCountry {
	return models.RawCountry{
		Name:       "Nigeria",
		Capital:    "Abuja",
		Region:     "Africa",
		Population: 206139589,
		Flag:       "https://flagcdn.com/ng.svg",
		Currencies: []models.Currency{{Code: "NGN"}},
	}
}

func TestReconcile_Nigeria(t *testing.T) {
	rates := map[string]decimal.Decimal{"NGN": d("1600.23")}

	tests := []struct {
		multiplier int64
		want       string
	}{
		{1000, "128818725.43"},
		{1500, "193228088.15"},
		{2000, "257637450.87"},
	}

	for _, tt := range tests {
		c := NewEngine(FixedMultiplier(tt.multiplier)).Reconcile(nigeria(), rates)

		require.NotNil(t, c.CurrencyCode)
		assert.Equal(t, "NGN", *c.CurrencyCode)
		assert.True(t, c.ExchangeRate.Valid)
		assert.True(t, d("1600.23").Equal(c.ExchangeRate.Decimal))
		require.True(t, c.EstimatedGDP.Valid)
		assert.Equal(t, tt.want, c.EstimatedGDP.Decimal.StringFixed(2), "multiplier %d", tt.multiplier)
	}
}

func TestReconcile_RandomWithinBounds(t *testing.T) {
	rates := map[string]decimal.Decimal{"NGN": d("1600.23")}
	e := NewEngine(nil)

	low := d("128818725.43")
	high := d("257637450.87")
	for i := 0; i < 200; i++ {
		c := e.Reconcile(nigeria(), rates)
		require.True(t, c.EstimatedGDP.Valid)
		gdp := c.EstimatedGDP.Decimal
		assert.True(t, gdp.GreaterThanOrEqual(low), "gdp %s below bound", gdp)
		assert.True(t, gdp.LessThanOrEqual(high), "gdp %s above bound", gdp)
		assert.LessOrEqual(t, -gdp.Exponent(), int32(2))
	}
}

func TestReconcile_NoCurrencies(t *testing.T) {
	raw := nigeria()
	raw.Currencies = nil

	c := NewEngine(FixedMultiplier(1500)).Reconcile(raw, map[string]decimal.Decimal{"NGN": d("1600.23")})

	assert.Nil(t, c.CurrencyCode)
	assert.False(t, c.ExchangeRate.Valid)
	require.True(t, c.EstimatedGDP.Valid)
	assert.True(t, c.EstimatedGDP.Decimal.IsZero())
}

func TestReconcile_UnknownCurrency(t *testing.T) {
	raw := nigeria()
	raw.Currencies = []models.Currency{{Code: "VBR"}}

	c := NewEngine(FixedMultiplier(1500)).Reconcile(raw, map[string]decimal.Decimal{"NGN": d("1600.23")})

	require.NotNil(t, c.CurrencyCode)
	assert.Equal(t, "VBR", *c.CurrencyCode)
	assert.False(t, c.ExchangeRate.Valid)
	assert.False(t, c.EstimatedGDP.Valid)
}

func TestReconcile_EmptyCode(t *testing.T) {
	raw := nigeria()
	raw.Currencies = []models.Currency{{Code: "  "}}

	c := NewEngine(FixedMultiplier(1500)).Reconcile(raw, map[string]decimal.Decimal{"": d("1")})

	assert.Nil(t, c.CurrencyCode)
	assert.False(t, c.ExchangeRate.Valid)
	assert.False(t, c.EstimatedGDP.Valid)
}

func TestReconcile_FirstCurrencyOnly(t *testing.T) {
	raw := nigeria()
	raw.Currencies = []models.Currency{{Code: "XXX"}, {Code: "NGN"}}

	c := NewEngine(FixedMultiplier(1500)).Reconcile(raw, map[string]decimal.Decimal{"NGN": d("1600.23")})

	assert.Equal(t, "XXX", *c.CurrencyCode)
	assert.False(t, c.ExchangeRate.Valid)
	assert.False(t, c.EstimatedGDP.Valid)
}

func TestReconcile_ZeroPopulationOrRate(t *testing.T) {
	e := NewEngine(MultiplierFunc(func() int64 {
		t.Fatal("multiplier must not be drawn when the result is zero")
		return 0
	}))

	raw := nigeria()
	raw.Population = 0
	c := e.Reconcile(raw, map[string]decimal.Decimal{"NGN": d("1600.23")})
	require.True(t, c.EstimatedGDP.Valid)
	assert.True(t, c.EstimatedGDP.Decimal.IsZero())
	assert.True(t, c.ExchangeRate.Valid)

	c = e.Reconcile(nigeria(), map[string]decimal.Decimal{"NGN": decimal.Zero})
	require.True(t, c.EstimatedGDP.Valid)
	assert.True(t, c.EstimatedGDP.Decimal.IsZero())
	assert.True(t, c.ExchangeRate.Decimal.IsZero())
}

func TestReconcile_NegativeValues(t *testing.T) {
	e := NewEngine(FixedMultiplier(1000))

	raw := nigeria()
	raw.Population = -5
	c := e.Reconcile(raw, map[string]decimal.Decimal{"NGN": d("2")})
	assert.Equal(t, int64(0), c.Population)
	assert.True(t, c.EstimatedGDP.Decimal.IsZero())

	c = e.Reconcile(nigeria(), map[string]decimal.Decimal{"NGN": d("-2")})
	assert.False(t, c.ExchangeRate.Valid)
	assert.False(t, c.EstimatedGDP.Valid)
}

func TestReconcile_BankersRounding(t *testing.T) {
	raw := models.RawCountry{Name: "Tiny", Population: 1, Currencies: []models.Currency{{Code: "T"}}}
	rates := map[string]decimal.Decimal{"T": d("8000")}

	// 1 * 1000 / 8000 = 0.125 rounds down to the even digit.
	c := NewEngine(FixedMultiplier(1000)).Reconcile(raw, rates)
	assert.Equal(t, "0.12", c.EstimatedGDP.Decimal.StringFixed(2))

	// 1 * 1080 / 8000 = 0.135 rounds up to the even digit.
	c = NewEngine(FixedMultiplier(1080)).Reconcile(raw, rates)
	assert.Equal(t, "0.14", c.EstimatedGDP.Decimal.StringFixed(2))
}

func TestReconcile_OptionalFields(t *testing.T) {
	raw := models.RawCountry{Name: "  Bouvet Island ", Region: "Antarctic", Population: 0}

	c := NewEngine(nil).Reconcile(raw, nil)

	assert.Equal(t, "Bouvet Island", c.Name)
	assert.Equal(t, "bouvet island", c.NameKey)
	assert.Nil(t, c.Capital)
	assert.Nil(t, c.FlagURL)
	require.NotNil(t, c.Region)
	assert.Equal(t, "Antarctic", *c.Region)
	assert.True(t, c.LastRefreshedAt.IsZero())
}

func TestReconcileAll(t *testing.T) {
	raws := []models.RawCountry{
		nigeria(),
		{Name: "", Population: 10},
		{Name: "   ", Population: 10},
		{Name: "Antarctica", Population: 1000},
		{Name: "Atlantis", Population: 5, Currencies: []models.Currency{{Code: "VBR"}}},
	}
	rates := map[string]decimal.Decimal{"NGN": d("1600.23")}

	out, stats := NewEngine(FixedMultiplier(1000)).ReconcileAll(raws, rates)

	require.Len(t, out, 3)
	assert.Equal(t, Stats{Total: 5, Reconciled: 3, Skipped: 2, MissingRate: 1, NoCurrency: 1}, stats)
	assert.Equal(t, "Nigeria", out[0].Name)
	assert.Equal(t, "Antarctica", out[1].Name)
	assert.Equal(t, "Atlantis", out[2].Name)
}

func TestRandomMultiplier_Range(t *testing.T) {
	var m RandomMultiplier
	for i := 0; i < 1000; i++ {
		v := m.Draw()
		assert.GreaterOrEqual(t, v, int64(MinMultiplier))
		assert.LessOrEqual(t, v, int64(MaxMultiplier))
	}
}
