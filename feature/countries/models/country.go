package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Country is one persisted row of the countries cache.
//
// EstimatedGDP is a deliberately noisy figure: every refresh draws a fresh
// random multiplier, so two refreshes over identical upstream data produce
// different values.
type Country struct {
	ID              uint                `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name            string              `gorm:"column:name;type:varchar(255);not null" json:"name"`
	NameKey         string              `gorm:"column:name_key;type:varchar(255);not null;uniqueIndex:idx_countries_name_key" json:"-"`
	Capital         *string             `gorm:"column:capital;type:varchar(255)" json:"capital"`
	Region          *string             `gorm:"column:region;type:varchar(100);index:idx_countries_region" json:"region"`
	Population      int64               `gorm:"column:population;not null" json:"population"`
	CurrencyCode    *string             `gorm:"column:currency_code;type:varchar(10);index:idx_countries_currency_code" json:"currency_code"`
	ExchangeRate    decimal.NullDecimal `gorm:"column:exchange_rate;type:decimal(15,6)" json:"exchange_rate" swaggertype:"string"`
	EstimatedGDP    decimal.NullDecimal `gorm:"column:estimated_gdp;type:decimal(20,2)" json:"estimated_gdp" swaggertype:"string"`
	FlagURL         *string             `gorm:"column:flag_url;type:varchar(500)" json:"flag_url"`
	LastRefreshedAt time.Time           `gorm:"column:last_refreshed_at;not null" json:"last_refreshed_at"`
}

// TableName overrides the table name.
func (Country) TableName() string {
	return "countries"
}

// UpdatableColumns lists every column a refresh overwrites on conflict.
// The identity column and the unique key are excluded.
var UpdatableColumns = []string{
	"name",
	"capital",
	"region",
	"population",
	"currency_code",
	"exchange_rate",
	"estimated_gdp",
	"flag_url",
	"last_refreshed_at",
}

// RequiredColumns lists the columns the service cannot run without.
var RequiredColumns = append([]string{"id", "name_key"}, UpdatableColumns...)
