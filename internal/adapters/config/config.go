package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	postgresStorage "github.com/clubmsg/backend/internal/adapters/database/postgres"
	redisAdapter "github.com/clubmsg/backend/internal/adapters/database/redis"
	"github.com/clubmsg/backend/internal/domain/service"
	"github.com/clubmsg/backend/pkg/jwt"
	"github.com/clubmsg/backend/pkg/logger"
	qr "github.com/clubmsg/backend/pkg/qrcode"
)

type Config struct {
	Database   *gorm.DB
	Redis      *redisAdapter.Client
	SMTPDialer *gomail.Dialer
	SMTPFrom   string
	SMTPDomain string
	JWT        jwt.Config
	Defaults   service.ProfileDefaults
	QR         qr.Config
	InviteBase string
	ListenAddr string
}

func initConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		panic(err)
	}
}

func Get() *Config {
	initConfig()

	err := logger.Init(logger.Config{
		Debug:     viper.GetBool("settings.debug"),
		LogToFile: viper.GetBool("settings.log-to-file"),
		LogsDir:   viper.GetString("settings.logs-dir"),
	})
	if err != nil {
		panic(err)
	}

	var gormConfig *gorm.Config
	if viper.GetBool("settings.debug") {
		newLogger := gormLogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormLogger.Config{
				SlowThreshold: time.Second,
				LogLevel:      gormLogger.Info,
				Colorful:      true,
			},
		)
		gormConfig = &gorm.Config{
			Logger:         newLogger,
			TranslateError: true,
		}
	} else {
		gormConfig = &gorm.Config{TranslateError: true}
	}

	dsn := fmt.Sprintf("user=%s password=%s dbname=%s host=%s port=%d sslmode=disable",
		viper.GetString("service.database.user"),
		viper.GetString("service.database.password"),
		viper.GetString("service.database.name"),
		viper.GetString("service.database.host"),
		viper.GetInt("service.database.port"),
	)

	database, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		logger.Log.Panicf("Failed to connect to the database: %v", err)
	} else {
		logger.Log.Info("Successfully connected to the database")
	}

	if errMigrate := database.AutoMigrate(postgresStorage.Migrations...); errMigrate != nil {
		logger.Log.Panicf("Failed to migrate database: %v", errMigrate)
	}

	redisClient, err := redisAdapter.New(redisAdapter.Options{
		Host:        viper.GetString("service.redis.host"),
		Port:        viper.GetString("service.redis.port"),
		Password:    viper.GetString("service.redis.password"),
		PresenceTTL: viper.GetDuration("service.redis.presence-ttl"),
	})
	if err != nil {
		logger.Log.Panicf("Failed to connect to redis: %v", err)
	} else {
		logger.Log.Info("Successfully connected to redis")
	}

	dialer := gomail.NewDialer(
		viper.GetString("service.smtp.host"),
		viper.GetInt("service.smtp.port"),
		viper.GetString("service.smtp.user"),
		viper.GetString("service.smtp.pass"),
	)

	return &Config{
		Database:   database,
		Redis:      redisClient,
		SMTPDialer: dialer,
		SMTPFrom:   viper.GetString("service.smtp.email"),
		SMTPDomain: viper.GetString("service.smtp.domain"),
		JWT: jwt.Config{
			Secret:      viper.GetString("service.jwt.secret"),
			Issuer:      viper.GetString("service.jwt.issuer"),
			ExpireAfter: viper.GetDuration("service.jwt.expire-after"),
		},
		Defaults: service.ProfileDefaults{
			AvatarURL: viper.GetString("service.profile.default-avatar-url"),
			About:     viper.GetString("service.profile.default-about"),
		},
		QR: qr.Config{
			Size:          viper.GetInt("service.qr.size"),
			LogoPath:      viper.GetString("service.qr.logo-path"),
			LogoScale:     viper.GetFloat64("service.qr.logo-scale"),
			RecoveryLevel: viper.GetInt("service.qr.recovery-level"),
		},
		InviteBase: viper.GetString("service.invite.base-url"),
		ListenAddr: viper.GetString("service.http.listen"),
	}
}
