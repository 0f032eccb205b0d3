// Package store persists countries through GORM.
//
// Rows are keyed by name_key, the lowercased and trimmed country name, which
// carries a unique index. UpsertAll writes a full refresh in batches of at most
// database.batch_size rows; each batch is one parameterized
// INSERT ... ON CONFLICT (sqlite) / ON DUPLICATE KEY UPDATE (MySQL) statement,
// and all batches run inside one transaction so a failing batch leaves the
// table untouched.
//
// Reads:
//
//	store.Count(ctx)
//	store.MaxTimestamp(ctx)          // nil when empty
//	store.TopByGDP(ctx, 5)           // NULL GDPs last
//	store.GetByName(ctx, "nigeria")  // ErrNotFound
//	store.List(ctx, store.Filter{Region: "Africa", Sort: store.SortGDPDesc})
package store
