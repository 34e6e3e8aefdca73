package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"

	_ "github.com/lib/pq"

	"github.com/anton-mel/OOPBankApplication/internal/accountrepo"
	"github.com/anton-mel/OOPBankApplication/internal/accountservice"
	"github.com/anton-mel/OOPBankApplication/internal/bankrepo"
	"github.com/anton-mel/OOPBankApplication/internal/bankservice"
	"github.com/anton-mel/OOPBankApplication/internal/cliapp"
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

	bankRepo := bankrepo.NewRepoPGS(conn)
	accountRepo := accountrepo.NewRepoPGS(conn)
	transactionRepo := transactionrepo.NewRepoPGS(conn)

	bankService := bankservice.New(bankRepo, accountRepo)
	accountService := accountservice.New(transactionRepo, accountRepo)

	ctx := logger.WithContext(context.Background())

	bank, err := bankService.LoadOrCreate(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot load bank")
	}

	cliapp.New(bank, bankService, accountService, os.Stdin, os.Stdout).Run(ctx)
}
