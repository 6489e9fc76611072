package app

import (
	"errors"
	"net/http"

	"github.com/clubmsg/backend/internal/adapters/config"
	"github.com/clubmsg/backend/internal/adapters/controller/rest"
	"github.com/clubmsg/backend/internal/adapters/database/postgres"
	"github.com/clubmsg/backend/internal/domain/service"
	"github.com/clubmsg/backend/pkg/jwt"
	"github.com/clubmsg/backend/pkg/logger"
	"github.com/clubmsg/backend/pkg/smtp"
)

type App struct {
	server *http.Server
	log    *logger.Logger
}

// New wires storages, services and the HTTP boundary together.
func New(cfg *config.Config) (*App, error) {
	log, err := logger.Named("http")
	if err != nil {
		return nil, err
	}

	userStorage := postgres.NewUserStorage(cfg.Database)
	profileStorage := postgres.NewProfileStorage(cfg.Database)
	clubStorage := postgres.NewClubStorage(cfg.Database)
	membershipStorage := postgres.NewMembershipStorage(cfg.Database)
	messageStorage := postgres.NewMessageStorage(cfg.Database)

	smtpClient := smtp.NewClient(cfg.SMTPDialer, cfg.SMTPFrom, cfg.SMTPDomain)

	userService := service.NewUserService(userStorage, profileStorage, cfg.Redis.Codes, smtpClient, cfg.Defaults)
	profileService := service.NewProfileService(profileStorage, messageStorage, cfg.Redis.Presence)
	clubService := service.NewClubService(clubStorage, membershipStorage, profileStorage, messageStorage)
	membershipService := service.NewMembershipService(membershipStorage, clubStorage, profileStorage)
	messageService := service.NewMessageService(messageStorage, clubStorage, profileStorage, membershipStorage)
	qrService := service.NewQrService(clubStorage, cfg.QR, cfg.InviteBase)

	handler := rest.NewHandler(
		userService,
		profileService,
		clubService,
		membershipService,
		messageService,
		qrService,
		jwt.NewService(cfg.JWT),
		log,
	)

	return &App{
		server: &http.Server{
			Addr:    cfg.ListenAddr,
			Handler: handler.Router(),
		},
		log: log,
	}, nil
}

func (a *App) Start() {
	a.log.Infof("listening on %s", a.server.Addr)
	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		a.log.Panicf("http server stopped: %v", err)
	}
}
