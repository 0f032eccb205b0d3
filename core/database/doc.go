// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) that opens
// either MySQL (production) or SQLite (local runs and tests) from the
// application's configuration, with pool limits and an initial ping bounded by
// the configured timeout.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns read the live table definition through the
// GORM migrator. The countries store uses them after AutoMigrate to fail fast
// when the table does not carry the columns the refresh pipeline writes.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	missing, err := database.MissingColumns(db, "countries", []string{"name_key"})
package database
