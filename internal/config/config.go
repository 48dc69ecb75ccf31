package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr          string        `yaml:"addr"`
	JWTSecret     string        `yaml:"jwt_secret"`
	APITimeout    time.Duration `yaml:"timeout"`
	TokenDuration time.Duration `yaml:"token_duration"`
	DatabasePath  string        `yaml:"database_path"`
	UploadDir     string        `yaml:"upload_dir"`
	MaxUploadSize int64         `yaml:"max_upload_size"`
	AdminEmail    string        `yaml:"admin_email"`
	AdminPassword string        `yaml:"admin_password"`
}

// LoadConfig builds the config from env vars (a .env file is honored when
// present) and overlays the YAML file at path when given.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Addr:          getEnv("CMS_ADDR", ":8080"),
		JWTSecret:     getEnv("CMS_JWT_SECRET", "supersecretkey"),
		APITimeout:    15 * time.Second,
		TokenDuration: 24 * time.Hour,
		DatabasePath:  getEnv("CMS_DATABASE_PATH", "cms.db"),
		UploadDir:     getEnv("CMS_UPLOAD_DIR", "./uploads"),
		MaxUploadSize: 10 << 20,
		AdminEmail:    getEnv("CMS_ADMIN_EMAIL", "admin@rynvlabs.com"),
		AdminPassword: getEnv("CMS_ADMIN_PASSWORD", "admin123"),
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
