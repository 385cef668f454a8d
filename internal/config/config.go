package config

import (
	env_utils "importhub/internal/util/env"
	"importhub/internal/util/logger"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

var log = logger.GetLogger()

const (
	AppModeWeb        = "web"
	AppModeBackground = "background"
	AppModeAll        = "all"
)

type EnvVariables struct {
	IsTesting       bool
	DatabaseDsn     string            `env:"DATABASE_DSN"    required:"true"`
	EnvMode         env_utils.EnvMode `env:"ENV_MODE"        required:"true"`
	BackendRootPath string            `env:"BACKEND_ROOT_PATH"`
	// cache
	ValkeyHost     string `env:"VALKEY_HOST"     required:"true"`
	ValkeyPort     string `env:"VALKEY_PORT"     required:"true"`
	ValkeyUsername string `env:"VALKEY_USERNAME" required:"false"`
	ValkeyPassword string `env:"VALKEY_PASSWORD" required:"false"`
	ValkeyIsSsl    bool   `env:"VALKEY_IS_SSL"   env-default:"false"`
	// importers
	ProxyBaseURL string `env:"PROXY_BASE_URL"  required:"false"`
	TaskWorkers  int    `env:"TASK_WORKERS"    env-default:"2"`
	// error tracking
	SentryDsn string `env:"SENTRY_DSN"      required:"false"`
	// welcome emails, logged instead of sent when SMTP_HOST is empty
	SmtpHost     string `env:"SMTP_HOST"       required:"false"`
	SmtpPort     int    `env:"SMTP_PORT"       env-default:"587"`
	SmtpUsername string `env:"SMTP_USERNAME"   required:"false"`
	SmtpPassword string `env:"SMTP_PASSWORD"   required:"false"`
	SmtpFrom     string `env:"SMTP_FROM"       env-default:"no-reply@importhub.local"`
}

var (
	env  EnvVariables
	once sync.Once
)

func GetEnv() EnvVariables {
	once.Do(loadEnvVariables)
	return env
}

func loadEnvVariables() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Warn("could not get current working directory", "error", err)
		cwd = "."
	}

	backendRoot := cwd
	for {
		if _, err := os.Stat(filepath.Join(backendRoot, "go.mod")); err == nil {
			break
		}

		parent := filepath.Dir(backendRoot)
		if parent == backendRoot {
			break
		}

		backendRoot = parent
	}

	envPaths := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(backendRoot, ".env"),
	}

	// .env is optional here: in containers everything comes from the environment
	for _, path := range envPaths {
		if err := godotenv.Load(path); err == nil {
			log.Info("Successfully loaded .env", "path", path)
			break
		}
	}

	err = cleanenv.ReadEnv(&env)
	if err != nil {
		log.Error("Configuration could not be loaded", "error", err)
		os.Exit(1)
	}

	if env.BackendRootPath == "" {
		env.BackendRootPath = backendRoot
	}

	for _, arg := range os.Args {
		if strings.Contains(arg, "test") {
			env.IsTesting = true
			break
		}
	}

	if env.EnvMode != env_utils.EnvModeDevelopment && env.EnvMode != env_utils.EnvModeProduction {
		log.Error("ENV_MODE is invalid", "mode", env.EnvMode)
		os.Exit(1)
	}
	log.Info("ENV_MODE loaded", "mode", env.EnvMode)

	if env.TaskWorkers <= 0 {
		log.Error("TASK_WORKERS must be positive", "workers", env.TaskWorkers)
		os.Exit(1)
	}

	if env.ProxyBaseURL == "" {
		log.Warn("PROXY_BASE_URL is empty, importer webhooks are disabled")
	} else {
		env.ProxyBaseURL = strings.TrimRight(env.ProxyBaseURL, "/")
	}

	log.Info("Environment variables loaded successfully!")
}
