package config

const (
	// DefaultDatabasePath is the default path for the application database
	DefaultDatabasePath = "./hangar.db"

	// DefaultScraperMaxBodyBytes caps how much of a fetched page is read
	// when extracting metadata (5 MiB).
	DefaultScraperMaxBodyBytes = 5 << 20

	// DefaultScraperUserAgent identifies metadata fetches to remote sites.
	DefaultScraperUserAgent = "Hangar/1.0 (+https://github.com/hangarapp/hangar)"
)
