package main

import (
	"bytes"
	"context"
	_ "embed"
	"flag"
	"fmt"
	"io"
	"os"

	"fashion-cart/internal/client"
	"fashion-cart/internal/config"
	"fashion-cart/internal/logger"
	"fashion-cart/internal/repository"
	"fashion-cart/internal/seed"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

//go:embed catalog.yaml
var defaultCatalog []byte

func main() {
	file := flag.String("file", "", "YAML catalog to load (defaults to the bundled sample)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	// the seeder never signs tokens, so only the storage and log settings apply
	cfg := &struct {
		Environment config.Environment
		Log         config.Log
		DatabaseURL string `env:"DATABASE_URL" envDefault:"sqlite:fashion-cart.db"`
	}{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log, cfg.Environment.Name).With().Str("cmd", "seed").Logger()

	var src io.Reader = bytes.NewReader(defaultCatalog)
	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			log.Fatal().Err(err).Msg("open catalog")
		}
		defer f.Close()
		src = f
	}

	cat, err := seed.Load(src)
	if err != nil {
		log.Fatal().Err(err).Msg("load catalog")
	}

	db, err := client.InitDBClient(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("init database")
	}

	res, err := seed.Apply(context.Background(), seed.Repositories{
		Users:    repository.NewUserRepository(db),
		Products: repository.NewProductRepository(db),
		Coupons:  repository.NewCouponRepository(db),
	}, cat, bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("seed apply")
	}

	log.Info().
		Bool("admin", res.Admin).
		Int("products", res.Products).
		Int("coupons", res.Coupons).
		Msg("seed applied")
}
