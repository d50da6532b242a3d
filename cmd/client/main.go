package main

import (
	"flag"
	"os"

	"itemvault/internal/client/cli"
	"itemvault/internal/client/config"
)

func main() {
	cfg := config.Load()

	// Root flags (apply to every subcommand).
	flag.StringVar(&cfg.ServerURL, "s", cfg.ServerURL, "server base URL")
	flag.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory (default ~/.itemvault)")
	flag.StringVar(&cfg.Token, "token", "", "adopt a token handed over by an OAuth redirect")
	flag.StringVar(&cfg.LogFile, "log", "", "write logs to file")
	flag.Parse()

	os.Exit(cli.Run(flag.Args(), cfg))
}
