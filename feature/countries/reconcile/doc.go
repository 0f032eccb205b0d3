// Package reconcile combines a raw country with the exchange-rate table.
//
// The engine is pure: no I/O, no clock. For each country it picks the first
// declared currency, looks it up in the rate table and derives an estimated
// GDP as population * m / rate, where m is drawn uniformly from [1000, 2000]
// for every record on every refresh. The estimate is therefore noisy by
// construction and not reproducible across refreshes. Tests inject a fixed
// Multiplier to make it deterministic.
//
// Division is exact decimal arithmetic; the result is rounded half-to-even to
// two places to match the DECIMAL(20,2) column.
package reconcile
