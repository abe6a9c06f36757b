// Package main is the entry point for the rko application.
package main

import (
	"time"

	"github.com/rko-cli/rko/cmd"
	"github.com/rko-cli/rko/config"
	"github.com/rko-cli/rko/internal/cache"
	"github.com/rko-cli/rko/key"
	"github.com/rko-cli/rko/log"
	"github.com/rko-cli/rko/where"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	// Expired resolver responses are pruned in the background.
	ttl := time.Duration(viper.GetInt(key.ResolverCacheTTLHours)) * time.Hour
	go func() { _ = cache.New(where.Responses(), ttl).CollectGarbage() }()

	cmd.Execute()
}
