// Package countries implements the country exchange cache feature.
//
// It keeps a local table of countries enriched with exchange rates and an
// estimated GDP, built from two upstream sources:
//  1. Countries (restcountries.com): name, capital, region, population, flag, currencies.
//  2. Rates (open.er-api.com): currency code to rate against USD.
//
// # Refresh Pipeline
//
// The heavy lifting lives in the sub-packages, wired together by
// refresh.Service:
//
//	sources  -> fetch both upstreams concurrently
//	reconcile -> match first currency to its rate, estimate GDP
//	store    -> upsert every row in one transaction
//	summary  -> regenerate the summary image in the background
//
// # Components
//
//   - Service: Read surface over the store plus the refresh trigger.
//   - Handler: Exposes HTTP endpoints.
//   - Loader: Registers the feature with the application.
//
// # HTTP Endpoints
//
//   - POST   /countries/refresh : Refresh the cache from both upstreams.
//   - GET    /countries         : List, filtered by region/currency, sorted by gdp or name.
//   - GET    /countries/image   : The summary PNG.
//   - GET    /countries/:name   : One country, case-insensitive.
//   - DELETE /countries/:name   : Remove one country.
//   - GET    /status            : Total countries and last refresh time.
package countries
