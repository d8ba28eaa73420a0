package config

import (
	"time"

	"tosipeli/internal/model"

	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

// Identity backends.
const (
	IdentityBackendPostgres = "postgres"
	IdentityBackendFirebase = "firebase"
)

type GameConfig interface {
	Catalog() model.Catalog
	CenterWinProbability() float64
}

type HTTPConfig interface {
	Address() string
}

type PGConfig interface {
	DSN() string
}

type JWTConfig interface {
	AccessTokenSecretKey() []byte
	AccessTokenDuration() time.Duration
	RefreshTokenDuration() time.Duration
}

type IdentityConfig interface {
	Backend() string
}

type FirebaseConfig interface {
	APIKey() string
	ProjectID() string
	IdentityURL() string
	FirestoreURL() string
	Timeout() time.Duration
}

type RedisConfig interface {
	// Enabled is false when no address is configured; an in-memory store is used then.
	Enabled() bool
	Addr() string
	Password() string
	DB() int
}

type KafkaConfig interface {
	Enabled() bool
	Brokers() []string
	LeadTopic() string
}

type LogConfig interface {
	Level() string
	Format() string
	Output() string
	File() string
}
