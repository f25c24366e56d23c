package config

// Config is the configuration root.
type Config struct {
	Server                  ServerConfig            `mapstructure:"server"`
	DB                      DBConfig                `mapstructure:"database"`
	Redis                   RedisConfig             `mapstructure:"redis"`
	Logstash                LogstashConfig          `mapstructure:"logstash"`
	RateLimit               RateLimitConfig         `mapstructure:"rate_limit"`
	Kafka                   KafkaConfig             `mapstructure:"kafka"`
	KafkaEngagementConsumer KafkaEngagementConsumer `mapstructure:"kafka_engagement_consumer"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

type RateLimitConfig struct {
	Requests int `mapstructure:"requests"`
	WindowMs int `mapstructure:"window_ms"`
}

type KafkaConfig struct {
	Brokers  []string       `mapstructure:"brokers"`
	Sasl     SaslConfig     `mapstructure:"sasl"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
	MaxProcessingTime int `mapstructure:"max_processing_time"`
}

type KafkaEngagementConsumer struct {
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}
