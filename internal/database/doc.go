// Package database owns the GORM connection and schema migration for
// the Hangar datastore.
//
// Domain repositories live in subpackages (bookmarks, social, users),
// one per aggregate, each constructed from the shared *gorm.DB:
//
//	db, err := database.NewDatabase(cfg.Database.Path)
//	repo := bookmarks.NewRepository(db.DB)
//
// Expected business failures (duplicate bookmark, missing user, ...)
// are sentinel errors declared in this package so callers can branch
// with errors.Is without depending on storage internals.
package database
