package main

import (
	"context"
	"flag"
	"log"

	"itemvault/internal/server"
	"itemvault/internal/server/config"
)

func main() {
	cfg := config.Load()
	flag.StringVar(&cfg.Addr, "a", cfg.Addr, "bind address")
	flag.StringVar(&cfg.JWTSecret, "k", cfg.JWTSecret, "JWT signing secret")
	flag.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "redis address (empty for in-memory storage)")
	flag.Parse()

	app, err := server.NewApp(cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(context.Background())
}
