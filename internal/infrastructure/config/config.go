package config

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
)

const (
	// StoreDriverNeo4j selects the graph-store user repository (default).
	StoreDriverNeo4j = "neo4j"
	// StoreDriverMongo selects the document-store user repository.
	StoreDriverMongo = "mongo"
)

type Config struct {
	Port        string        `env:"PORT,         default=8080"`
	Env         string        `env:"ENV,          default=development"`
	LogLevel    string        `env:"LOG_LEVEL,    default=info"`
	JWTSecret   string        `env:"JWT_SECRET"`
	TokenTTL    time.Duration `env:"TOKEN_TTL,    default=24h"`
	BcryptCost  int           `env:"BCRYPT_COST,  default=10"`
	StoreDriver string        `env:"STORE_DRIVER, default=neo4j"`

	Neo4j Neo4jConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type Neo4jConfig struct {
	URI      string `env:"NEO4J_URI,      default=neo4j://localhost:7687"`
	Username string `env:"NEO4J_USERNAME, default=neo4j"`
	Password string `env:"NEO4J_PASSWORD"`
	Database string `env:"NEO4J_DATABASE, default=neo4j"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=account_api"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(log zerolog.Logger) *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		log.Error().Err(err).Msg("failed to load configuration")
		panic(err)
	}
	return &cfg
}
