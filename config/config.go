package config

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

type Config struct {
	HTTPAddr    string
	StoreDriver string

	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string

	MongoURI string
	MongoDB  string

	RedisHost    string
	RedisPort    string
	MenuCacheTTL time.Duration

	KafkaBroker      string
	KafkaOrdersTopic string
	KafkaGroupID     string

	PublicBaseURL string
	CORSOrigins   []string
	BcryptCost    int
	LogLevel      string
}

// Load reads the configuration from the environment.
func Load() Config {
	return Config{
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),
		StoreDriver: strings.ToLower(getenv("STORE_DRIVER", DriverPostgres)),

		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     getenv("DB_PORT", "5432"),
		DBName:     os.Getenv("DB_NAME"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),

		MongoURI: getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:  getenv("MONGO_DB", "streetqr"),

		RedisHost:    os.Getenv("REDIS_HOST"),
		RedisPort:    getenv("REDIS_PORT", "6379"),
		MenuCacheTTL: getDuration("MENU_CACHE_TTL", 10*time.Minute),

		KafkaBroker:      os.Getenv("KAFKA_BROKER"),
		KafkaOrdersTopic: getenv("KAFKA_ORDERS_TOPIC", "orders"),
		KafkaGroupID:     getenv("KAFKA_GROUP_ID", "agg-svc-consumer"),

		PublicBaseURL: getenv("PUBLIC_BASE_URL", "http://localhost:3000"),
		CORSOrigins:   splitList(os.Getenv("CORS_ORIGINS")),
		BcryptCost:    getInt("BCRYPT_COST", 10),
		LogLevel:      getenv("LOG_LEVEL", "info"),
	}
}

func (c Config) RedisEnabled() bool { return c.RedisHost != "" }

func (c Config) KafkaEnabled() bool { return c.KafkaBroker != "" }

func MustInitPostgres(cfg Config) *sql.DB {
	if cfg.DBHost == "" || cfg.DBPort == "" || cfg.DBName == "" || cfg.DBUser == "" {
		log.Fatal("Database environment variables are not fully configured")
	}

	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err = db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitMongo(ctx context.Context, cfg Config) *mongo.Client {
	opts := options.Client().ApplyURI(cfg.MongoURI).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}

	return client
}

func MustInitRedis(cfg Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisHost + ":" + cfg.RedisPort,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	return client
}

func NewKafkaReader(cfg Config) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{cfg.KafkaBroker},
		Topic:   cfg.KafkaOrdersTopic,
		GroupID: cfg.KafkaGroupID,
	})
}

func NewKafkaWriter(cfg Config) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.KafkaBroker),
		Topic:                  cfg.KafkaOrdersTopic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
