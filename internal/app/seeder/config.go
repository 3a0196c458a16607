package seeder

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds seeder pipeline settings.
type Config struct {
	Users           int     `yaml:"users"             env:"SEEDER_USERS"             env-default:"10"`
	PostsPerUser    int     `yaml:"posts_per_user"    env:"SEEDER_POSTS_PER_USER"    env-default:"3"`
	CommentsPerPost int     `yaml:"comments_per_post" env:"SEEDER_COMMENTS_PER_POST" env-default:"4"`
	LikeRatio       float64 `yaml:"like_ratio"        env:"SEEDER_LIKE_RATIO"        env-default:"0.3"`
	Seed            uint64  `yaml:"seed"              env:"SEEDER_SEED"              env-default:"1"`
}

// LoadConfig reads seeder configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, &cfg); err != nil {
				return nil, fmt.Errorf("seeder config: read %s: %w", path, err)
			}
			return &cfg, cfg.validate()
		}
		return nil, fmt.Errorf("seeder config: file %s not found", path)
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("seeder config: read env: %w", err)
	}

	return &cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.Users < 1 {
		return fmt.Errorf("seeder config: users must be at least 1")
	}
	if c.PostsPerUser < 0 || c.CommentsPerPost < 0 {
		return fmt.Errorf("seeder config: counts must not be negative")
	}
	if c.LikeRatio < 0 || c.LikeRatio > 1 {
		return fmt.Errorf("seeder config: like_ratio must be within [0, 1]")
	}
	return nil
}
