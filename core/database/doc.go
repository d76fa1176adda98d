// Package database handles database connections.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to properly configure
// MySQL connections based on the application's configuration. A sqlite driver is also
// supported for local development and tests (in-memory databases).
//
// # Connect
//
// The generic Connect function establishes a connection to the database. Schema
// ownership lives with the feature model packages, which are migrated at startup
// via AutoMigrate.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
