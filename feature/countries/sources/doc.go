// Package sources fetches raw data from the two upstream services.
//
// The countries source returns a JSON array of country objects; the rates
// source returns an object whose "rates" field maps currency codes to numbers.
// Rates are decoded straight into decimal.Decimal so no precision is lost to
// float64.
//
// Every failure (timeout, transport error, non-2xx status, oversized or
// malformed body, missing rates) is reported as a *SourceError naming the
// source. Calls are bounded by Config.Timeout and are never retried.
package sources
