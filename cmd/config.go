package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.yaml.in/yaml/v4"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"

	NotifyTransportKafka    = "kafka"
	NotifyTransportRabbitMQ = "rabbitmq"
	NotifyTransportLog      = "log"
)

type Config struct {
	HTTPPort string `yaml:"http_port"`

	DBHost     string `yaml:"db_host"`
	DBPort     string `yaml:"db_port"`
	DBUser     string `yaml:"db_user"`
	DBPassword string `yaml:"db_password"`
	DBName     string `yaml:"db_name"`
	DBSslMode  string `yaml:"db_sslmode"`

	StorageDriver  string        `yaml:"storage_driver"`
	StorageTimeout time.Duration `yaml:"storage_timeout"`

	NotifyTransport   string        `yaml:"notify_transport"`
	NotifyQueueSize   int           `yaml:"notify_queue_size"`
	NotifyWorkers     int           `yaml:"notify_workers"`
	NotifySendTimeout time.Duration `yaml:"notify_send_timeout"`

	KafkaBrokers     []string `yaml:"kafka_brokers"`
	KafkaTopicPrefix string   `yaml:"kafka_topic_prefix"`

	RabbitMQURL      string `yaml:"rabbitmq_url"`
	RabbitMQExchange string `yaml:"rabbitmq_exchange"`

	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
	CacheTTL      time.Duration `yaml:"cache_ttl"`

	NodeID int64 `yaml:"node_id"`

	AvailableBroadcastSchedule string `yaml:"available_broadcast_schedule"`

	LogLevel string `yaml:"log_level"`
}

func defaultConfig() Config {
	return Config{
		HTTPPort:                   "8080",
		DBHost:                     "localhost",
		DBPort:                     "5432",
		DBUser:                     "postgres",
		DBName:                     "parcelhub",
		DBSslMode:                  "disable",
		StorageDriver:              StorageDriverPostgres,
		StorageTimeout:             5 * time.Second,
		NotifyTransport:            NotifyTransportLog,
		NotifyQueueSize:            1024,
		NotifyWorkers:              8,
		NotifySendTimeout:          5 * time.Second,
		KafkaTopicPrefix:           "parcelhub.notifications",
		RabbitMQExchange:           "parcel_notifications",
		CacheTTL:                   30 * time.Second,
		NodeID:                     1,
		AvailableBroadcastSchedule: "*/30 * * * * *",
		LogLevel:                   "info",
	}
}

// LoadConfig reads the configuration from defaults, an optional .env file,
// the process environment and finally the YAML file named by CONFIG_FILE.
func LoadConfig() (Config, error) {
	return loadConfig(".env")
}

func loadConfig(envFile string) (Config, error) {
	// Variables already set in the environment win over the .env file.
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	cfg := defaultConfig()
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.HTTPPort, "HTTP_PORT")
	setString(&c.DBHost, "DB_HOST")
	setString(&c.DBPort, "DB_PORT")
	setString(&c.DBUser, "DB_USER")
	setString(&c.DBPassword, "DB_PASSWORD")
	setString(&c.DBName, "DB_NAME")
	setString(&c.DBSslMode, "DB_SSLMODE")
	setString(&c.StorageDriver, "STORAGE_DRIVER")
	setString(&c.NotifyTransport, "NOTIFY_TRANSPORT")
	setString(&c.KafkaTopicPrefix, "KAFKA_TOPIC_PREFIX")
	setString(&c.RabbitMQURL, "RABBITMQ_URL")
	setString(&c.RabbitMQExchange, "RABBITMQ_EXCHANGE")
	setString(&c.RedisAddr, "REDIS_ADDR")
	setString(&c.RedisPassword, "REDIS_PASSWORD")
	setString(&c.AvailableBroadcastSchedule, "AVAILABLE_BROADCAST_SCHEDULE")
	setString(&c.LogLevel, "LOG_LEVEL")

	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.KafkaBrokers = splitList(v)
	}

	if err := setInt(&c.NotifyQueueSize, "NOTIFY_QUEUE_SIZE"); err != nil {
		return err
	}
	if err := setInt(&c.NotifyWorkers, "NOTIFY_WORKERS"); err != nil {
		return err
	}
	if err := setInt(&c.RedisDB, "REDIS_DB"); err != nil {
		return err
	}
	if v := os.Getenv("NODE_ID"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("NODE_ID: %w", err)
		}
		c.NodeID = n
	}

	if err := setDuration(&c.StorageTimeout, "STORAGE_TIMEOUT"); err != nil {
		return err
	}
	if err := setDuration(&c.NotifySendTimeout, "NOTIFY_SEND_TIMEOUT"); err != nil {
		return err
	}
	return setDuration(&c.CacheTTL, "CACHE_TTL")
}

// applyFile overlays the keys present in a YAML file. Absent keys keep
// their current value.
func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to unmarshal YAML: %w", err)
	}
	return nil
}

func (c Config) Validate() error {
	switch c.StorageDriver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}

	switch c.NotifyTransport {
	case NotifyTransportLog:
	case NotifyTransportKafka:
		if len(c.KafkaBrokers) == 0 {
			return errors.New("KAFKA_BROKERS is required for the kafka transport")
		}
	case NotifyTransportRabbitMQ:
		if c.RabbitMQURL == "" {
			return errors.New("RABBITMQ_URL is required for the rabbitmq transport")
		}
	default:
		return fmt.Errorf("unknown NOTIFY_TRANSPORT %q", c.NotifyTransport)
	}

	if c.HTTPPort == "" {
		return errors.New("HTTP_PORT is required")
	}
	if c.NodeID < 0 || c.NodeID > 1023 {
		return fmt.Errorf("NODE_ID must be between 0 and 1023, got %d", c.NodeID)
	}
	return nil
}

// DSN is the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%v port=%v user=%v password=%v dbname=%v sslmode=%v",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
