package main

import (
	"fmt"
	"log"
	"os"

	"github.com/kalashala/kalashala/apps/shared"
	"github.com/kalashala/kalashala/core"
	emailsvc "github.com/kalashala/kalashala/services/email"
	logsvc "github.com/kalashala/kalashala/services/logger"
)

func main() {
	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		"admin",
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up DB & services; migrations are run explicitly with `migrate`
	svcs, err := shared.NewServices(conf, logger, false)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}

	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf, logger, log.New(os.Stdout, "", 0))
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	// start CLI
	cli := commandLine{
		conf:    conf,
		db:      svcs.DB,
		svcs:    svcs,
		mailSvc: mailSvc,
		out:     os.Stdout,
	}
	err = cli.run(os.Args)
	if cErr := svcs.Close(); cErr != nil {
		logger.Error(fmt.Sprintf("closing database: %v", cErr), cErr)
	}
	if err != nil {
		if err != errHelp {
			logger.Error(fmt.Sprintf("error: %v", err), err)
		}
		os.Exit(1)
	}
}
