package main

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "github.com/lib/pq"

	"github.com/anton-mel/OOPBankApplication/internal/accountdelivery"
	"github.com/anton-mel/OOPBankApplication/internal/accountrepo"
	"github.com/anton-mel/OOPBankApplication/internal/accountservice"
	"github.com/anton-mel/OOPBankApplication/internal/bankrepo"
	"github.com/anton-mel/OOPBankApplication/internal/bankservice"
	"github.com/anton-mel/OOPBankApplication/internal/middleware"
	"github.com/anton-mel/OOPBankApplication/internal/transactionrepo"
	"github.com/anton-mel/OOPBankApplication/pkg/configpkg"
	"github.com/anton-mel/OOPBankApplication/pkg/dbpkg"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.GetLogger(config)

	conn, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to db")
	}

	server, err := createServer(conn, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	err = server.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}

func createServer(conn *sql.DB, logger zerolog.Logger) (*gin.Engine, error) {
	bankRepo := bankrepo.NewRepoPGS(conn)
	accountRepo := accountrepo.NewRepoPGS(conn)
	transactionRepo := transactionrepo.NewRepoPGS(conn)

	bankService := bankservice.New(bankRepo, accountRepo)
	accountService := accountservice.New(transactionRepo, accountRepo)

	ctx := logger.WithContext(context.Background())

	bank, err := bankService.LoadOrCreate(ctx)
	if err != nil {
		return nil, err
	}

	accountHandler := accountdelivery.NewHandler(bank, bankService, accountService)

	gin.SetMode(gin.ReleaseMode)
	server := gin.New()

	server.Use(middleware.RequestLogger(logger))
	server.Use(gin.Recovery())

	accountHandler.RegisterRoutes(server)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("accountkind", accountdelivery.ValidAccountKind)
		if err != nil {
			return nil, errors.New("cannot register account kind validator")
		}
	}

	return server, nil
}
