package config

import (
	"log"
	"os"
	"strconv"

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

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // minutes
	} `yaml:"jwt"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`

	App struct {
		FrontendBaseURL   string `yaml:"frontend_base_url"`
		ResetTokenTTL     int    `yaml:"reset_token_ttl"` // minutes
		AdminSeedEmail    string `yaml:"admin_email"`
		AdminSeedPassword string `yaml:"admin_password"`
		AdminSeedName     string `yaml:"admin_name"`
	} `yaml:"app"`
}

var AppConfig *Config

// LoadConfig reads config/config.yaml, or builds the configuration from
// environment variables when DATABASE_URL is set (tests, CI, containers).
func LoadConfig() {
	var cfg Config

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
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.Email.SMTPHost = os.Getenv("MAIL_HOST")
	cfg.Email.SMTPPort, _ = strconv.Atoi(os.Getenv("MAIL_PORT"))
	cfg.Email.SMTPUsername = os.Getenv("MAIL_USER")
	cfg.Email.SMTPPassword = os.Getenv("MAIL_PASS")
	cfg.Email.FromEmail = os.Getenv("MAIL_FROM")
	cfg.App.FrontendBaseURL = os.Getenv("FRONTEND_BASE_URL")
	cfg.App.AdminSeedEmail = os.Getenv("ADMIN_EMAIL")
	cfg.App.AdminSeedPassword = os.Getenv("ADMIN_PASSWORD")
	cfg.App.AdminSeedName = os.Getenv("ADMIN_NAME")

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.JWT.TTL == 0 {
		cfg.JWT.TTL = 24 * 60 // session tokens are valid for one day
	}
	if cfg.App.ResetTokenTTL == 0 {
		cfg.App.ResetTokenTTL = 2 * 60 // reset links expire after two hours
	}
	if cfg.Email.FromEmail == "" {
		cfg.Email.FromEmail = "noreply@lifemed.com"
	}
	if cfg.Email.FromName == "" {
		cfg.Email.FromName = "Life Med"
	}
	if cfg.App.FrontendBaseURL == "" {
		cfg.App.FrontendBaseURL = "http://localhost:3000"
	}
	if cfg.App.AdminSeedName == "" {
		cfg.App.AdminSeedName = "Admin"
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
