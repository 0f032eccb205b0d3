package reconcile

import (
	"strings"

	"country-exchange/core/utils"
	"country-exchange/feature/countries/models"

	"github.com/shopspring/decimal"
)

// gdpPlaces is the scale of the estimated_gdp column.
const gdpPlaces = 2

// Stats summarizes one ReconcileAll pass.
type Stats struct {
	// Total is the number of raw records received.
	Total int
	// Reconciled is the number of candidates produced.
	Reconciled int
	// Skipped is the number of raw records dropped for having no usable name.
	Skipped int
	// MissingRate counts candidates whose currency had no rate.
	MissingRate int
	// NoCurrency counts candidates that declared no currency.
	NoCurrency int
}

// Engine turns raw upstream records into Country candidates.
type Engine struct {
	multiplier Multiplier
}

// NewEngine creates an Engine. A nil multiplier uses RandomMultiplier.
func NewEngine(m Multiplier) *Engine {
	if m == nil {
		m = RandomMultiplier{}
	}
	return &Engine{multiplier: m}
}

// Reconcile builds the candidate for one raw country. LastRefreshedAt is left
// zero; the caller stamps the whole run.
//
// Policy:
//   - no currencies: code and rate null, GDP exactly 0
//   - only the first currency is considered
//   - code empty, unknown, or with a negative rate: rate and GDP null
//   - population or rate zero: GDP 0
//   - otherwise GDP = population * m / rate rounded half-to-even to 2 places,
//     with m drawn fresh from the Multiplier for every call
func (e *Engine) Reconcile(raw models.RawCountry, rates map[string]decimal.Decimal) models.Country {
	population := raw.Population
	if population < 0 {
		population = 0
	}

	c := models.Country{
		Name:       strings.TrimSpace(raw.Name),
		NameKey:    utils.NormalizeName(raw.Name),
		Capital:    utils.OptionalString(raw.Capital),
		Region:     utils.OptionalString(raw.Region),
		Population: population,
		FlagURL:    utils.OptionalString(raw.Flag),
	}

	if len(raw.Currencies) == 0 {
		c.EstimatedGDP = decimal.NewNullDecimal(decimal.Zero)
		return c
	}

	c.CurrencyCode = utils.OptionalString(raw.Currencies[0].Code)
	if c.CurrencyCode == nil {
		return c
	}

	rate, ok := rates[*c.CurrencyCode]
	if !ok || rate.IsNegative() {
		return c
	}
	c.ExchangeRate = decimal.NewNullDecimal(rate)

	if population == 0 || rate.IsZero() {
		c.EstimatedGDP = decimal.NewNullDecimal(decimal.Zero)
		return c
	}

	m := decimal.NewFromInt(e.multiplier.Draw())
	gdp := decimal.NewFromInt(population).Mul(m).Div(rate).RoundBank(gdpPlaces)
	c.EstimatedGDP = decimal.NewNullDecimal(gdp)
	return c
}

// ReconcileAll applies Reconcile to every raw country with a usable name.
func (e *Engine) ReconcileAll(raws []models.RawCountry, rates map[string]decimal.Decimal) ([]models.Country, Stats) {
	stats := Stats{Total: len(raws)}
	out := make([]models.Country, 0, len(raws))

	for _, raw := range raws {
		if utils.NormalizeName(raw.Name) == "" {
			stats.Skipped++
			continue
		}
		c := e.Reconcile(raw, rates)
		switch {
		case len(raw.Currencies) == 0:
			stats.NoCurrency++
		case !c.ExchangeRate.Valid:
			stats.MissingRate++
		}
		out = append(out, c)
	}

	stats.Reconciled = len(out)
	return out, stats
}
