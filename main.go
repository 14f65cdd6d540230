package main

import (
	"github.com/hangarapp/hangar/internal/config"
	"github.com/hangarapp/hangar/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	cfg := config.NewConfig()
	entrypoint.Run(cfg, Version)
}
