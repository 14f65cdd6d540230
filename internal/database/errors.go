package database

import "errors"

// Sentinel errors for expected business outcomes. Anything else coming
// out of a repository is an unexpected storage fault and arrives
// wrapped with context.
var (
	ErrDuplicateBookmark = errors.New("bookmark already exists")
	ErrBookmarkNotFound  = errors.New("bookmark not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrSelfFollow        = errors.New("users cannot follow themselves")
)
