package core

import (
	"fmt"
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Debug    bool
		TestMode bool
		Env      string // DEV (default), TEST, QA, PROD
		Build    string

		AppName          string
		SecretKey        string // JWT signing key
		FrontendBaseURL  string
		DefaultFromEmail mail.Address

		JWTExpirationDelta    time.Duration
		ResetCodeTimeoutDelta time.Duration

		SendgridAPIKey string
		RollbarToken   string

		WorkDir string

		Server   ServerConfig
		Database DatabaseConfig
	}

	ServerConfig struct {
		Host            string
		Port            string
		DebugHost       string
		ShutdownTimeout time.Duration
	}

	DatabaseConfig struct {
		Engine        string
		Host          string
		Port          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		Name          string
		DisableTLS    bool
	}
)

func (c ServerConfig) Address() string   { return c.Host + ":" + c.Port }
func (c DatabaseConfig) Address() string { return c.Host + ":" + c.Port }

// NewConfig loads the app configuration from the environment,
// optionally backed by a config/.env.<env> file.
func NewConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Elo")
	v.SetDefault("build", "dev")
	v.SetDefault("jwtKey", "chave-super-secreta-trocar-em-prod")
	v.SetDefault("frontendBaseUrl", "http://localhost:5173")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("jwtExpirationDelta", time.Hour)
	v.SetDefault("resetCodeTimeoutDelta", 5*time.Minute)
	v.SetDefault("serverHost", "0.0.0.0")
	v.SetDefault("serverPort", "3000")
	v.SetDefault("serverDebugHost", "0.0.0.0:4000")
	v.SetDefault("serverShutdownTimeout", 20*time.Second)
	v.SetDefault("dbEngine", "postgres")
	v.SetDefault("dbHost", "localhost")
	v.SetDefault("dbPort", "5432")
	v.SetDefault("dbUser", "elo")
	v.SetDefault("dbPassword", "")
	v.SetDefault("dbName", "elo")
	v.SetDefault("dbDisableTLS", true)

	env := strings.ToUpper(os.Getenv("ENV"))
	if env == "" {
		env = "DEV"
	}
	v.SetDefault("testMode", env == "TEST")
	v.SetEnvPrefix(env)

	wd := Getwd()

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err = godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	conf := &Config{
		Debug:                 v.GetBool("debug"),
		TestMode:              v.GetBool("testMode"),
		Env:                   env,
		Build:                 v.GetString("build"),
		AppName:               v.GetString("appName"),
		SecretKey:             v.GetString("jwtKey"),
		FrontendBaseURL:       v.GetString("frontendBaseUrl"),
		DefaultFromEmail:      mail.Address{Name: v.GetString("appName"), Address: v.GetString("defaultFromEmail")},
		JWTExpirationDelta:    v.GetDuration("jwtExpirationDelta"),
		ResetCodeTimeoutDelta: v.GetDuration("resetCodeTimeoutDelta"),
		SendgridAPIKey:        v.GetString("sendgridApiKey"),
		RollbarToken:          v.GetString("rollbarToken"),
		WorkDir:               wd,
		Server: ServerConfig{
			Host:            v.GetString("serverHost"),
			Port:            v.GetString("serverPort"),
			DebugHost:       v.GetString("serverDebugHost"),
			ShutdownTimeout: v.GetDuration("serverShutdownTimeout"),
		},
		Database: DatabaseConfig{
			Engine:        v.GetString("dbEngine"),
			Host:          v.GetString("dbHost"),
			Port:          v.GetString("dbPort"),
			User:          v.GetString("dbUser"),
			Password:      v.GetString("dbPassword"),
			AdminUser:     v.GetString("dbAdminUser"),
			AdminPassword: v.GetString("dbAdminPassword"),
			Name:          v.GetString("dbName"),
			DisableTLS:    v.GetBool("dbDisableTLS"),
		},
	}
	if conf.SecretKey == "" {
		log.Fatal(fmt.Errorf("config: empty JWT key"))
	}
	return conf
}
