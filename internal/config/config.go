package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
		TemplatesDir string `yaml:"templates_dir"`
	} `yaml:"email"`

	Session struct {
		Secret    string `yaml:"secret"`
		Name      string `yaml:"name"`
		MaxAgeSec int    `yaml:"max_age_sec"`
	} `yaml:"session"`

	Admin struct {
		Email    string `yaml:"email"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	} `yaml:"admin"`
}

var AppConfig *Config

// LoadConfig reads config.yaml, or falls back to environment variables when
// DATABASE_URL is set (the mode the test harness and container deploys use).
// A local .env file is honored if present.
func LoadConfig() {
	var cfg Config

	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.Session.Secret = os.Getenv("SESSION_SECRET")

	cfg.Email.SMTPHost = os.Getenv("SMTP_HOST")
	cfg.Email.SMTPPort, _ = strconv.Atoi(os.Getenv("SMTP_PORT"))
	cfg.Email.SMTPUsername = os.Getenv("SMTP_USER")
	cfg.Email.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	cfg.Email.FromEmail = os.Getenv("SMTP_FROM")
	cfg.Email.TemplatesDir = os.Getenv("TEMPLATES_DIR")

	cfg.Admin.Email = os.Getenv("ADMIN_EMAIL")
	cfg.Admin.Username = os.Getenv("ADMIN_USERNAME")
	cfg.Admin.Password = os.Getenv("ADMIN_PASSWORD")

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3000
	}
	if cfg.Session.Name == "" {
		cfg.Session.Name = "sakay_session"
	}
	if cfg.Session.MaxAgeSec == 0 {
		cfg.Session.MaxAgeSec = 24 * 60 * 60
	}
	if cfg.Session.Secret == "" {
		// Dev fallback only; deployments must set a real secret.
		cfg.Session.Secret = "sakay-dev-session-secret"
	}
	if cfg.Email.TemplatesDir == "" {
		cfg.Email.TemplatesDir = "internal/email/templates"
	}
	if cfg.Email.FromEmail == "" {
		cfg.Email.FromEmail = "no-reply@sakay.ph"
	}
	if cfg.Email.FromName == "" {
		cfg.Email.FromName = "Sakay"
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
