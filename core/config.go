package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var Conf *Config

type Config struct {
	Env       string
	Debug     bool
	TestMode  bool
	AppName   string
	Build     string
	SecretKey []byte

	FrontendBaseURL  string
	DefaultFromEmail mail.Address
	SendgridAPIKey   string
	RollbarToken     string

	// PasswordResetTimeout is how long a password reset token stays valid.
	PasswordResetTimeout time.Duration

	Server struct {
		Host                      string
		Port                      string
		JWTExpirationDelta        time.Duration
		JWTRefreshExpirationDelta time.Duration
	}

	// VisitLogDSN points the visit log at a SQLite database.
	// An empty DSN keeps visits in memory only.
	VisitLogDSN string

	AI struct {
		Provider string
		APIKey   string
		Model    string
	}
}

func init() {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Mind Sprouts")
	v.SetDefault("secretKey", "4q$x0f&1!sprouts+z#kg^d8e(h2m)u_c5y@vj7n9w*b3r6t&")
	v.SetDefault("frontendBaseURL", "http://localhost:3000")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("passwordResetTimeout", 15*time.Minute)
	v.SetDefault("serverHost", "")
	v.SetDefault("serverPort", "8000")
	v.SetDefault("jwtExpirationDelta", 7*24*time.Hour)
	v.SetDefault("jwtRefreshExpirationDelta", 4*time.Hour)
	v.SetDefault("visitLogDSN", "")
	v.SetDefault("aiProvider", "openai")
	v.SetDefault("aiModel", "gpt-4o-mini")

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	if env == "" {
		env = "DEV"
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	Conf = &Config{
		Env:                  env,
		Debug:                v.GetBool("debug"),
		TestMode:             env == "TEST",
		AppName:              v.GetString("appName"),
		Build:                v.GetString("build"),
		SecretKey:            []byte(v.GetString("secretKey")),
		FrontendBaseURL:      v.GetString("frontendBaseURL"),
		DefaultFromEmail:     mail.Address{Name: v.GetString("appName"), Address: v.GetString("defaultFromEmail")},
		SendgridAPIKey:       v.GetString("sendgridAPIKey"),
		RollbarToken:         v.GetString("rollbarToken"),
		PasswordResetTimeout: v.GetDuration("passwordResetTimeout"),
		VisitLogDSN:          v.GetString("visitLogDSN"),
	}
	Conf.Server.Host = v.GetString("serverHost")
	Conf.Server.Port = v.GetString("serverPort")
	Conf.Server.JWTExpirationDelta = v.GetDuration("jwtExpirationDelta")
	Conf.Server.JWTRefreshExpirationDelta = v.GetDuration("jwtRefreshExpirationDelta")
	Conf.AI.Provider = v.GetString("aiProvider")
	Conf.AI.APIKey = v.GetString("aiAPIKey")
	Conf.AI.Model = v.GetString("aiModel")
}

func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}
