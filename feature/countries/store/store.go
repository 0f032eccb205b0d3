package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"country-exchange/core/database"
	"country-exchange/core/utils"
	"country-exchange/feature/countries/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrNotFound is returned when no row matches a name.
	ErrNotFound = errors.New("country not found")
	// ErrInvalidSort is returned for an unknown List sort key.
	ErrInvalidSort = errors.New("invalid sort")
	// ErrInvalidField is returned for a TopN field outside the whitelist.
	ErrInvalidField = errors.New("invalid order field")
)

// Sort keys accepted by List.
const (
	SortGDPDesc  = "gdp_desc"
	SortGDPAsc   = "gdp_asc"
	SortNameAsc  = "name_asc"
	SortNameDesc = "name_desc"
)

var sortClauses = map[string]string{
	SortGDPDesc:  "estimated_gdp IS NULL, estimated_gdp DESC",
	SortGDPAsc:   "estimated_gdp IS NULL, estimated_gdp ASC",
	SortNameAsc:  "name ASC",
	SortNameDesc: "name DESC",
}

// orderable lists the columns TopN may order by.
var orderable = map[string]struct{}{
	"estimated_gdp": {},
	"population":    {},
	"name":          {},
}

// Filter narrows List results. Empty fields are ignored.
type Filter struct {
	Region   string
	Currency string
	Sort     string
}

// Validate rejects unknown sort keys.
func (f Filter) Validate() error {
	if f.Sort == "" {
		return nil
	}
	if _, ok := sortClauses[f.Sort]; !ok {
		return fmt.Errorf("%w %q: must be one of gdp_desc, gdp_asc, name_asc, name_desc", ErrInvalidSort, f.Sort)
	}
	return nil
}

// Store persists countries keyed by normalized name.
type Store struct {
	db        *gorm.DB
	batchSize int
}

// New creates a Store. batchSize caps the rows of each INSERT statement.
func New(db *gorm.DB, batchSize int) *Store {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &Store{db: db, batchSize: batchSize}
}

// Migrate creates or updates the countries table and verifies its columns.
func (s *Store) Migrate(ctx context.Context) error {
	db := s.db.WithContext(ctx)
	if err := db.AutoMigrate(&models.Country{}); err != nil {
		return fmt.Errorf("failed to migrate countries table: %w", err)
	}

	missing, err := database.MissingColumns(db, models.Country{}.TableName(), models.RequiredColumns)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("countries table is missing columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

// UpsertAll inserts or fully replaces every record, matched on normalized name.
// All batches share one transaction: either every row is written or none is.
// Duplicate names within records resolve to the last occurrence.
// It returns the number of input records.
func (s *Store) UpsertAll(ctx context.Context, records []models.Country) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	rows, err := dedupe(records)
	if err != nil {
		return 0, err
	}

	onConflict := clause.OnConflict{
		Columns:   []clause.Column{{Name: "name_key"}},
		DoUpdates: clause.AssignmentColumns(models.UpdatableColumns),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for start := 0; start < len(rows); start += s.batchSize {
			end := min(start+s.batchSize, len(rows))
			batch := rows[start:end]
			if err := tx.Clauses(onConflict).Create(&batch).Error; err != nil {
				return fmt.Errorf("upsert batch %d-%d: %w", start, end, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

func dedupe(records []models.Country) ([]models.Country, error) {
	index := make(map[string]int, len(records))
	out := make([]models.Country, 0, len(records))

	for _, r := range records {
		r.Name = strings.TrimSpace(r.Name)
		r.NameKey = utils.NormalizeName(r.Name)
		if r.NameKey == "" {
			return nil, errors.New("country name must not be empty")
		}
		r.ID = 0

		if i, ok := index[r.NameKey]; ok {
			out[i] = r
			continue
		}
		index[r.NameKey] = len(out)
		out = append(out, r)
	}
	return out, nil
}

// Count returns the number of stored countries.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Country{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count countries: %w", err)
	}
	return n, nil
}

// MaxTimestamp returns the latest last_refreshed_at, or nil when the table is empty.
func (s *Store) MaxTimestamp(ctx context.Context) (*time.Time, error) {
	var stamps []time.Time
	err := s.db.WithContext(ctx).
		Model(&models.Country{}).
		Order("last_refreshed_at DESC").
		Limit(1).
		Pluck("last_refreshed_at", &stamps).Error
	if err != nil {
		return nil, fmt.Errorf("max last_refreshed_at: %w", err)
	}
	if len(stamps) == 0 {
		return nil, nil
	}
	ts := stamps[0].UTC()
	return &ts, nil
}

// TopN returns up to n countries ordered by field descending.
// With nullsLast, rows where field is NULL follow every non-null row.
func (s *Store) TopN(ctx context.Context, field string, n int, nullsLast bool) ([]models.Country, error) {
	if _, ok := orderable[field]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidField, field)
	}

	order := field + " DESC"
	if nullsLast {
		order = field + " IS NULL, " + order
	}

	var out []models.Country
	err := s.db.WithContext(ctx).
		Order(order).
		Order("id ASC").
		Limit(n).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("top %d by %s: %w", n, field, err)
	}
	return out, nil
}

// TopByGDP returns up to n countries by estimated GDP, nulls last.
func (s *Store) TopByGDP(ctx context.Context, n int) ([]models.Country, error) {
	return s.TopN(ctx, "estimated_gdp", n, true)
}

// GetByName looks a country up by normalized name.
func (s *Store) GetByName(ctx context.Context, name string) (*models.Country, error) {
	var c models.Country
	err := s.db.WithContext(ctx).Where("name_key = ?", utils.NormalizeName(name)).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get country %q: %w", name, err)
	}
	return &c, nil
}

// DeleteByName removes a country by normalized name.
func (s *Store) DeleteByName(ctx context.Context, name string) error {
	res := s.db.WithContext(ctx).Where("name_key = ?", utils.NormalizeName(name)).Delete(&models.Country{})
	if res.Error != nil {
		return fmt.Errorf("delete country %q: %w", name, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns countries matching f. Region and currency match case-insensitively.
// Without a sort key rows come back in insertion order.
func (s *Store) List(ctx context.Context, f Filter) ([]models.Country, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	q := s.db.WithContext(ctx).Model(&models.Country{})
	if region := strings.TrimSpace(f.Region); region != "" {
		q = q.Where("LOWER(region) = ?", strings.ToLower(region))
	}
	if currency := strings.TrimSpace(f.Currency); currency != "" {
		q = q.Where("LOWER(currency_code) = ?", strings.ToLower(currency))
	}
	if f.Sort != "" {
		q = q.Order(sortClauses[f.Sort])
	}

	var out []models.Country
	if err := q.Order("id ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	return out, nil
}
