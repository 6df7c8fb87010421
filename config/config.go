package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

const EnvPrefix = "QUESTD_"

type Configs struct {
	Env string `toml:"env" env:"ENV"`

	Log         LogConfigs         `toml:"log" envPrefix:"LOG_"`
	Database    DatabaseConfigs    `toml:"database" envPrefix:"DB_"`
	ApiServer   APIServerConfigs   `toml:"api_server" envPrefix:"API_"`
	Auth        AuthConfigs        `toml:"auth" envPrefix:"AUTH_"`
	Redis       RedisConfigs       `toml:"redis" envPrefix:"REDIS_"`
	Kafka       KafkaConfigs       `toml:"kafka" envPrefix:"KAFKA_"`
	Quest       QuestConfigs       `toml:"quest" envPrefix:"QUEST_"`
	Leaderboard LeaderboardConfigs `toml:"leaderboard" envPrefix:"LEADERBOARD_"`
}

type LogConfigs struct {
	Level string `toml:"level" env:"LEVEL"`
}

type DatabaseConfigs struct {
	// Driver is either mysql or sqlite.
	Driver   string `toml:"driver" env:"DRIVER"`
	Host     string `toml:"host" env:"HOST"`
	Port     string `toml:"port" env:"PORT"`
	Database string `toml:"database" env:"DATABASE"`
	User     string `toml:"user" env:"USER"`
	Password string `toml:"password" env:"PASSWORD"`

	// File is the sqlite database file.
	File string `toml:"file" env:"FILE"`
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type APIServerConfigs struct {
	Host           string   `toml:"host" env:"HOST"`
	Port           string   `toml:"port" env:"PORT"`
	RateLimit      float64  `toml:"rate_limit" env:"RATE_LIMIT"`
	RateBurst      int      `toml:"rate_burst" env:"RATE_BURST"`
	AllowedOrigins []string `toml:"allowed_origins" env:"ALLOWED_ORIGINS"`
}

func (s APIServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type AuthConfigs struct {
	// Issuer must match the iss claim of every access token.
	Issuer          string        `toml:"issuer" env:"ISSUER"`
	TokenSecret     string        `toml:"token_secret" env:"TOKEN_SECRET"`
	TokenExpiration time.Duration `toml:"token_expiration" env:"TOKEN_EXPIRATION"`
}

type RedisConfigs struct {
	Addr           string        `toml:"addr" env:"ADDR"`
	LeaderboardTTL time.Duration `toml:"leaderboard_ttl" env:"LEADERBOARD_TTL"`
}

type KafkaConfigs struct {
	Enable   bool     `toml:"enable" env:"ENABLE"`
	Addrs    []string `toml:"addrs" env:"ADDRS"`
	ClientID string   `toml:"client_id" env:"CLIENT_ID"`
	Topic    string   `toml:"topic" env:"TOPIC"`
}

type QuestConfigs struct {
	// NodeID seeds the quest id generator; every running instance needs its own value.
	NodeID        int64         `toml:"node_id" env:"NODE_ID"`
	RetryCooldown time.Duration `toml:"retry_cooldown" env:"RETRY_COOLDOWN"`

	CreatorRoleIDs []string `toml:"creator_role_ids" env:"CREATOR_ROLE_IDS"`
	ManagerRoleIDs []string `toml:"manager_role_ids" env:"MANAGER_ROLE_IDS"`
}

type LeaderboardConfigs struct {
	DefaultLimit int `toml:"default_limit" env:"DEFAULT_LIMIT"`
	MaxLimit     int `toml:"max_limit" env:"MAX_LIMIT"`
}

func Default() Configs {
	return Configs{
		Env:      "local",
		Log:      LogConfigs{Level: "info"},
		Database: DatabaseConfigs{Driver: "sqlite", File: "questboard.db"},
		ApiServer: APIServerConfigs{
			Port:           "8080",
			RateLimit:      20,
			RateBurst:      40,
			AllowedOrigins: []string{"*"},
		},
		Auth: AuthConfigs{
			Issuer:          "questd",
			TokenExpiration: 24 * time.Hour,
		},
		Redis: RedisConfigs{
			Addr:           "localhost:6379",
			LeaderboardTTL: time.Minute,
		},
		Kafka: KafkaConfigs{
			ClientID: "questd",
			Topic:    "quest-events",
		},
		Quest: QuestConfigs{
			NodeID:        1,
			RetryCooldown: 24 * time.Hour,
		},
		Leaderboard: LeaderboardConfigs{
			DefaultLimit: 10,
			MaxLimit:     25,
		},
	}
}

// Load starts from Default, overlays the TOML file at path (if path is not empty), then
// applies QUESTD_* environment variables.
func Load(path string) (Configs, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Configs{}, fmt.Errorf("cannot decode config file %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Configs{}, fmt.Errorf("cannot parse environment: %w", err)
	}

	return cfg, nil
}
