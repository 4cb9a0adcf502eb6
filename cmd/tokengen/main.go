// Command tokengen prints a bearer token for a business.
//
//	go run ./cmd/tokengen -business shop-42 -ttl 720h
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/ArowuTest/sorteos-backend/internal/config"
	"github.com/ArowuTest/sorteos-backend/pkg/jwt"
	"github.com/joho/godotenv"
	"golang.org/x/exp/slog"
)

func main() {
	businessID := flag.String("business", "", "business id to put in the token subject")
	ttl := flag.Duration("ttl", 0, "token lifetime, defaults to JWT.ExpiresIn; negative means no expiry")
	flag.Parse()

	if *businessID == "" {
		fmt.Fprintln(os.Stderr, "-business is required")
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Failed to load .env file", "error", err)
	}
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	lifetime := *ttl
	if lifetime == 0 {
		lifetime = cfg.TokenTTL()
	}
	if lifetime < 0 {
		lifetime = 0
	}

	token, err := jwt.IssueToken(*businessID, []byte(cfg.JWT.Secret), lifetime)
	if err != nil {
		slog.Error("Failed to issue token", "error", err, "businessID", *businessID)
		os.Exit(1)
	}
	fmt.Println(token)
}
