package config

import "time"

type Config struct {
	AppName                       string   `env:"APP_NAME" env-default:"juniper-api"`
	Port                          int      `env:"PORT" env-default:"3004"`
	LogLevel                      string   `env:"LOG_LEVEL" env-default:"info"`
	PrettyLogs                    bool     `env:"PRETTY_LOGS" env-default:"false"`
	HttpServerWriteTimeoutSeconds int      `env:"HTTP_SERVER_WRITE_TIMEOUT_SECONDS" env-default:"10"`
	HttpServerReadTimeoutSeconds  int      `env:"HTTP_SERVER_READ_TIMEOUT_SECONDS" env-default:"10"`
	HttpServerIdleTimeoutSeconds  int      `env:"HTTP_SERVER_IDLE_TIMEOUT_SECONDS" env-default:"10"`
	MaxHeaderBytes                int      `env:"HTTP_SERVER_MAX_HEADER_BYTES" env-default:"64000"` // 64KB
	AllowOrigins                  []string `env:"HTTP_SERVER_ALLOW_ORIGINS" env-default:"*"`
	AllowMethods                  []string `env:"HTTP_SERVER_ALLOW_METHODS" env-default:"GET,POST"`
	StartupMaxAttempts            int      `env:"STARTUP_MAX_ATTEMPTS" env-default:"5"`

	// PostgreSQL (progression read models)
	DatabaseDriver              string        `env:"DB_DRIVER" env-default:"postgres"`
	DatabaseHost                string        `env:"DB_HOST" env-default:""`
	DatabasePort                string        `env:"DB_PORT" env-default:"5432"`
	DatabaseUserName            string        `env:"DB_USER_NAME" env-default:""`
	DatabasePassword            string        `env:"DB_PASSWORD" env-default:""`
	DatabaseName                string        `env:"DB_NAME" env-default:"juniper"`
	DatabaseSSLMode             string        `env:"DB_SQL_MODE" env-default:"disable"`
	DatabaseMaxOpenConns        int           `env:"DB_MAX_OPEN_CONNS" env-default:"25"`
	DatabaseMaxIdleConns        int           `env:"DB_MAX_IDLE_CONNS" env-default:"10"`
	DatabaseConnMaxLifetime     time.Duration `env:"DB_CONN_MAX_LIFETIME" env-default:"10s"`
	DatabaseMigrationFolderPath string        `env:"DB_MIGRATION_FOLDER_PATH" env-default:"db/pg"`
	DatabaseMigrationVersion    int           `env:"DB_MIGRATION_VERSION" env-default:"0"`

	// Tracing
	TracingEnabled      bool   `env:"TRACING_ENABLED" env-default:"false"`
	TracingOTLPEndpoint string `env:"TRACING_OTLP_ENDPOINT" env-default:"localhost:4317"`
	TracingOTLPProtocol string `env:"TRACING_OTLP_PROTOCOL" env-default:"grpc"`

	// Kafka query transport
	KafkaBrokers         []string `env:"KAFKA_BROKERS" env-default:"localhost:9092"`
	KafkaQueryTopic      string   `env:"KAFKA_QUERY_TOPIC" env-default:"progression-queries"`
	KafkaResponseTopic   string   `env:"KAFKA_RESPONSE_TOPIC" env-default:"progression-query-responses"`
	KafkaConsumerGroup   string   `env:"KAFKA_CONSUMER_GROUP" env-default:"juniper-consumer"`
	KafkaConsumerEnabled bool     `env:"KAFKA_CONSUMER_ENABLED" env-default:"true"`
	KafkaBatchSize       int      `env:"KAFKA_BATCH_SIZE" env-default:"100"`
	KafkaBatchTimeout    int      `env:"KAFKA_BATCH_TIMEOUT_MS" env-default:"100"`
	KafkaRequiredAcks    int      `env:"KAFKA_REQUIRED_ACKS" env-default:"1"`
	KafkaCompression     string   `env:"KAFKA_COMPRESSION" env-default:"snappy"`

	// Peer services
	ListingServiceURL    string        `env:"LISTING_SERVICE_URL" env-default:"http://localhost:3010"`
	UsersGroupsURL       string        `env:"USERS_GROUPS_SERVICE_URL" env-default:"http://localhost:3011"`
	DefenceServiceURL    string        `env:"DEFENCE_SERVICE_URL" env-default:"http://localhost:3012"`
	RefDataServiceURL    string        `env:"REFDATA_SERVICE_URL" env-default:"http://localhost:3013"`
	MaterialServiceURL   string        `env:"MATERIAL_SERVICE_URL" env-default:"http://localhost:3014"`
	PeerRequestTimeout   time.Duration `env:"PEER_REQUEST_TIMEOUT" env-default:"10s"`

	// Query processing
	DocumentBatchSize       int `env:"DOCUMENT_BATCH_SIZE" env-default:"50"`
	PartialMatchDefaultPage int `env:"PARTIAL_MATCH_DEFAULT_PAGE_SIZE" env-default:"20"`
}
