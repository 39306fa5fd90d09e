//go:build js && wasm

package main

import (
	"github.com/syumai/workers"
	"github.com/syumai/workers/cloudflare"

	"github.com/dvcrn/hax-poster/internal/credentials"
	"github.com/dvcrn/hax-poster/internal/logger"
	"github.com/dvcrn/hax-poster/internal/server"
)

const kvBinding = "HAX_POSTER_KV"

func main() {
	log := logger.New(cloudflare.Getenv("LOG_LEVEL"))

	log.Info().Str("binding", kvBinding).Msg("📦 Using Cloudflare KV credential store")
	store, err := credentials.NewKVStore(kvBinding)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Cloudflare KV store")
	}

	srv := server.New(log, store, cloudflare.Getenv("ADMIN_API_KEY"))

	workers.Serve(srv)
}
