package main

import (
	"context"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ieh-shop/backend/db"
	"github.com/ieh-shop/backend/internal/address"
	"github.com/ieh-shop/backend/internal/auth"
	"github.com/ieh-shop/backend/internal/brand"
	"github.com/ieh-shop/backend/internal/category"
	"github.com/ieh-shop/backend/internal/config"
	"github.com/ieh-shop/backend/internal/contact"
	"github.com/ieh-shop/backend/internal/dashboard"
	"github.com/ieh-shop/backend/internal/mailer"
	"github.com/ieh-shop/backend/internal/order"
	"github.com/ieh-shop/backend/internal/product"
	"github.com/ieh-shop/backend/internal/user"
)

func main() {
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	if err := db.Migrate(cfg.PostgresDSN); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	pool, err := pgxpool.New(context.Background(), cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	if err := os.MkdirAll(cfg.UploadDir+"/slips", 0o755); err != nil {
		log.Fatalf("upload dir: %v", err)
	}

	var mail mailer.Mailer
	if cfg.MailerSendToken != "" {
		mail = mailer.NewMailerSend(cfg.MailerSendToken, cfg.SenderEmail, "IEH Support")
	} else {
		log.Printf("[mail] MAILERSEND_API_TOKEN not set, outbound email disabled")
	}

	srv := &server{
		cfg:        cfg,
		issuer:     auth.NewTokenIssuer(cfg.JWTSecret),
		mail:       mail,
		users:      user.NewPGRepo(pool),
		products:   product.NewPGRepo(pool),
		categories: category.NewPGRepo(pool),
		brands:     brand.NewPGRepo(pool),
		orders:     order.NewPGRepo(pool),
		addresses:  address.NewPGRepo(pool),
		contacts:   contact.NewPGRepo(pool),
		dashboard:  dashboard.NewPGRepo(pool),
	}

	r := srv.router()
	log.Printf("api listening on %s", cfg.Addr)
	log.Fatal(r.Run(cfg.Addr))
}
