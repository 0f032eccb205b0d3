// Package models defines the data types of the countries feature.
//
// Country is the GORM model of the "countries" table and the JSON shape served
// by the HTTP API. Decimal columns use shopspring/decimal so exchange rates
// (DECIMAL(15,6)) and estimated GDP (DECIMAL(20,2)) never pass through float64;
// they are encoded as JSON strings.
//
// RawCountry and Currency mirror the upstream countries payload. The remaining
// types are HTTP response bodies.
package models
