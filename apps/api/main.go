package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/VarunPasupunuri/mind-sprouts/core"
	"github.com/VarunPasupunuri/mind-sprouts/core/analytics"
	"github.com/VarunPasupunuri/mind-sprouts/core/assignment"
	"github.com/VarunPasupunuri/mind-sprouts/core/challenge"
	"github.com/VarunPasupunuri/mind-sprouts/core/game"
	"github.com/VarunPasupunuri/mind-sprouts/core/learn"
	"github.com/VarunPasupunuri/mind-sprouts/core/notification"
	"github.com/VarunPasupunuri/mind-sprouts/core/reward"
	"github.com/VarunPasupunuri/mind-sprouts/core/user"
	echoapi "github.com/VarunPasupunuri/mind-sprouts/apps/api/echo"
	chatsvc "github.com/VarunPasupunuri/mind-sprouts/services/chat"
	emailsvc "github.com/VarunPasupunuri/mind-sprouts/services/email"
	sendgridmail "github.com/VarunPasupunuri/mind-sprouts/services/email/sendgrid"
	logsvc "github.com/VarunPasupunuri/mind-sprouts/services/logger"
	inmemdb "github.com/VarunPasupunuri/mind-sprouts/storage/database/inmem"
	sqlitedb "github.com/VarunPasupunuri/mind-sprouts/storage/database/sqlite"
)

const shutdownTimeout = 20 * time.Second

func main() {
	conf := core.Conf

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	// set up storage
	db := inmemdb.Open()
	if _, _, err := inmemdb.Seed(db); err != nil {
		logger.Fatal("seeding fixtures", err)
	}

	// the visit log outlives restarts when a DSN is configured
	var visitRepo analytics.Repository = inmemdb.NewVisitRepository(db)
	if conf.VisitLogDSN != "" {
		store, err := sqlitedb.NewVisitStore(conf.VisitLogDSN)
		if err != nil {
			logger.Fatal("opening visit log", err)
		}
		defer store.Close() // nolint:errcheck
		visitRepo = store
	}

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = sendgridmail.NewService(conf.SendgridAPIKey, conf.AppName, conf.DefaultFromEmail.Address, logger)
	}

	usrSvc := user.NewService(inmemdb.NewUserRepository(db), mailSvc, logger)
	chlSvc := challenge.NewService(inmemdb.NewChallengeRepository(db), usrSvc)
	gameSvc := game.NewService(inmemdb.NewGameRepository(db))
	learnSvc := learn.NewService(inmemdb.NewLearnRepository(db), usrSvc)
	asgSvc := assignment.NewService(inmemdb.NewAssignmentRepository(db), usrSvc, core.NewScheduler(), logger)
	defer asgSvc.Shutdown()
	rwdSvc := reward.NewService(inmemdb.NewRewardRepository(db), usrSvc)
	notifSvc := notification.NewService(inmemdb.NewNotificationRepository(db), chlSvc)
	anlSvc := analytics.NewService(visitRepo)

	var tipSvc *chatsvc.TipService
	if conf.AI.APIKey != "" {
		var err error
		if tipSvc, err = chatsvc.NewService(conf.AI.Provider, conf.AI.APIKey, conf.AI.Model, logger); err != nil {
			logger.Warn("tip service disabled", err)
		}
	}

	// start API server
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	server := echoapi.NewServer(&echoapi.Options{
		Address:        conf.Addr(),
		Logger:         logger,
		SignalShutdown: func() { shutdown <- syscall.SIGTERM },

		UserSvc:         usrSvc,
		ChallengeSvc:    chlSvc,
		GameSvc:         gameSvc,
		LearnSvc:        learnSvc,
		AssignmentSvc:   asgSvc,
		RewardSvc:       rwdSvc,
		NotificationSvc: notifSvc,
		AnalyticsSvc:    anlSvc,
		TipSvc:          tipSvc,
	})

	go server.Start()

	sig := <-shutdown
	logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

	// give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		logger.Fatal("could not stop server gracefully", err)
	}
}
