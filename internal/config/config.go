package config

import (
	"strings"
	"time"

	"github.com/Frenky19/QRkot-spreadsheets/internal/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Google   GoogleConfig   `mapstructure:"google"`
	Task     TaskConfig     `mapstructure:"task"`
	Report   ReportConfig   `mapstructure:"report"`
	Pool     PoolConfig     `mapstructure:"pool"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	User        string `mapstructure:"user"`
	Password    string `mapstructure:"password"`
	DBName      string `mapstructure:"dbname"`
	SSLMode     string `mapstructure:"sslmode"`
	AutoMigrate bool   `mapstructure:"auto_migrate"` // 启动时使用 gorm AutoMigrate，否则依赖 migrate 命令
}

// RedisConfig 分配锁与报表缓存
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// KafkaConfig 领域事件投递
type KafkaConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type AuthConfig struct {
	Secret                 string `mapstructure:"secret"`
	TokenLifetime          int    `mapstructure:"token_lifetime"` // 秒
	FirstSuperuserEmail    string `mapstructure:"first_superuser_email"`
	FirstSuperuserPassword string `mapstructure:"first_superuser_password"`
}

// GoogleConfig 服务账号信息与目标表格
type GoogleConfig struct {
	Enabled                 bool   `mapstructure:"enabled"`
	CredentialsFile         string `mapstructure:"credentials_file"` // 优先于下面的分散字段
	Type                    string `mapstructure:"type"`
	ProjectID               string `mapstructure:"project_id"`
	PrivateKeyID            string `mapstructure:"private_key_id"`
	PrivateKey              string `mapstructure:"private_key"`
	ClientEmail             string `mapstructure:"client_email"`
	ClientID                string `mapstructure:"client_id"`
	AuthURI                 string `mapstructure:"auth_uri"`
	TokenURI                string `mapstructure:"token_uri"`
	AuthProviderX509CertURL string `mapstructure:"auth_provider_x509_cert_url"`
	ClientX509CertURL       string `mapstructure:"client_x509_cert_url"`
	SpreadsheetID           string `mapstructure:"spreadsheet_id"`
}

type TaskConfig struct {
	ReportInterval int `mapstructure:"report_interval"` // 秒，0 表示关闭
	AuditInterval  int `mapstructure:"audit_interval"`  // 秒，0 表示关闭
}

type ReportConfig struct {
	CacheTTL int `mapstructure:"cache_ttl"` // 秒
}

// PoolConfig 事件投递协程池
type PoolConfig struct {
	Size int `mapstructure:"size"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // 日志级别: debug, info, warn, error, fatal
	Output string `mapstructure:"output"` // 输出目标: stdout, stderr, file
	File   string `mapstructure:"file"`   // 日志文件路径（当output为file时使用）
}

// GetLevel 实现 logger.LogConfig 接口
func (l LogConfig) GetLevel() string {
	return l.Level
}

// GetOutput 实现 logger.LogConfig 接口
func (l LogConfig) GetOutput() string {
	return l.Output
}

// GetFile 实现 logger.LogConfig 接口
func (l LogConfig) GetFile() string {
	return l.File
}

// TokenTTL JWT 有效期
func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenLifetime) * time.Second
}

// TTL 报表缓存有效期
func (r ReportConfig) TTL() time.Duration {
	return time.Duration(r.CacheTTL) * time.Second
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "qrkot")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.topic", "qrkot.funding")
	v.SetDefault("auth.secret", "SECRET")
	v.SetDefault("auth.token_lifetime", 3600)
	v.SetDefault("auth.first_superuser_email", "")
	v.SetDefault("auth.first_superuser_password", "")
	v.SetDefault("google.enabled", false)
	v.SetDefault("google.credentials_file", "")
	v.SetDefault("google.type", "service_account")
	v.SetDefault("google.project_id", "")
	v.SetDefault("google.private_key_id", "")
	v.SetDefault("google.private_key", "")
	v.SetDefault("google.client_email", "")
	v.SetDefault("google.client_id", "")
	v.SetDefault("google.client_x509_cert_url", "")
	v.SetDefault("google.spreadsheet_id", "")
	v.SetDefault("google.auth_uri", "https://accounts.google.com/o/oauth2/auth")
	v.SetDefault("google.token_uri", "https://oauth2.googleapis.com/token")
	v.SetDefault("google.auth_provider_x509_cert_url", "https://www.googleapis.com/oauth2/v1/certs")
	v.SetDefault("task.report_interval", 0)
	v.SetDefault("task.audit_interval", 3600)
	v.SetDefault("report.cache_ttl", 60)
	v.SetDefault("pool.size", 16)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("log.file", "logs/app.log")
}

func Load() *Config {
	// .env 只补充尚未设置的环境变量
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file loaded: %v", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/qrkot")

	setDefaults(v)

	// 自动读取环境变量，例如 DATABASE_HOST -> database.host
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		logger.Warn("Warning: Could not read config file: %v", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		logger.Fatal("Unable to decode config into struct: %v", err)
	}

	// 环境变量中的私钥通常是转义过的换行
	config.Google.PrivateKey = strings.ReplaceAll(config.Google.PrivateKey, `\n`, "\n")

	return &config
}
