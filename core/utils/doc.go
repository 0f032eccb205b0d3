// Package utils provides common helpers for the country-exchange application:
// name normalization used as the country uniqueness key, and conversions between
// blank strings and nullable columns.
package utils
