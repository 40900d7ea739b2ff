package echoapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/VarunPasupunuri/mind-sprouts/core"
	"github.com/VarunPasupunuri/mind-sprouts/core/analytics"
	"github.com/VarunPasupunuri/mind-sprouts/core/assignment"
	"github.com/VarunPasupunuri/mind-sprouts/core/challenge"
	"github.com/VarunPasupunuri/mind-sprouts/core/game"
	"github.com/VarunPasupunuri/mind-sprouts/core/learn"
	"github.com/VarunPasupunuri/mind-sprouts/core/notification"
	"github.com/VarunPasupunuri/mind-sprouts/core/reward"
	"github.com/VarunPasupunuri/mind-sprouts/core/user"
	chatsvc "github.com/VarunPasupunuri/mind-sprouts/services/chat"
)

type (
	Options struct {
		Address        string
		DisableReqLogs bool
		Logger         core.Logger
		SignalShutdown func()

		UserSvc         *user.Service
		ChallengeSvc    *challenge.Service
		GameSvc         *game.Service
		LearnSvc        *learn.Service
		AssignmentSvc   *assignment.Service
		RewardSvc       *reward.Service
		NotificationSvc *notification.Service
		AnalyticsSvc    *analytics.Service
		TipSvc          *chatsvc.TipService
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(core.Conf.Debug || core.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.opts.SignalShutdown)
	s.app.Debug = core.Conf.Debug

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(appJWTConfig)

	registerUserAPI(v1, jwt, s.opts.UserSvc)
	registerChallengeAPI(v1, jwt, s.opts.ChallengeSvc, s.opts.NotificationSvc, s.opts.UserSvc)
	registerGameAPI(v1, jwt, s.opts.GameSvc)
	registerLearnAPI(v1, jwt, s.opts.LearnSvc)
	registerAssignmentAPI(v1, jwt, s.opts.AssignmentSvc, s.opts.UserSvc)
	registerRewardAPI(v1, jwt, s.opts.RewardSvc)
	registerNotificationAPI(v1, jwt, s.opts.NotificationSvc)
	registerAnalyticsAPI(v1, jwt, s.opts.AnalyticsSvc)
	registerTipsAPI(v1, jwt, s.opts.TipSvc, s.opts.ChallengeSvc, s.opts.UserSvc)
}

func (s *server) Start() {
	s.app.Logger.Fatal(s.app.Start(s.opts.Address))
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Mind Sprouts API!")
}
