package app

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/siaksi/siaksi-api/internal/api"
	"github.com/siaksi/siaksi-api/internal/config"
	"github.com/siaksi/siaksi-api/internal/db"
	"github.com/siaksi/siaksi-api/internal/logger"
	"github.com/siaksi/siaksi-api/internal/mailqueue"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	redisClient := db.OpenRedis(conf.Redis)

	s := api.NewServer(conf, postgresDB, redisClient)

	dispatcher := mailqueue.NewDispatcher(mailqueue.NewRedisQueue(redisClient, conf.Redis.MailQueueKey), s.MailService())
	go dispatcher.Run()

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}
