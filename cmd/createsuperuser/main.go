package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/recipevault/engine/internal/repository"
	"github.com/recipevault/engine/internal/services"
	"github.com/recipevault/engine/pkg/config"
	"github.com/recipevault/engine/pkg/database"
	"github.com/recipevault/engine/pkg/logger"
)

func main() {
	email := flag.String("email", "", "email for the new superuser")
	password := flag.String("password", "", "password for the new superuser")
	name := flag.String("name", "", "display name")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: createsuperuser -email <email> -password <password> [-name <name>]")
		os.Exit(2)
	}

	cfg := config.MustLoad()
	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	db, err := database.OpenPostgres(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	auth := services.NewAuthService(repository.NewUserRepository(db), nil)
	u, err := auth.CreateSuperuser(context.Background(), *email, *password, *name)
	if err != nil {
		log.Fatal("create superuser failed", zap.Error(err))
	}

	fmt.Printf("superuser %s created (%s)\n", u.Email, u.ID)
}
