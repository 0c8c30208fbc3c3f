package config

import (
	"fmt"
	"time"
)

// Config is the application configuration. One instance is built at
// process start and injected into every component that needs it.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	Admin      AdminConfig      `mapstructure:"admin"`
	CORS       CORSConfig       `mapstructure:"cors"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Worker     WorkerConfig     `mapstructure:"worker"`
	Pagination PaginationConfig `mapstructure:"pagination"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	ProductionMode bool   `mapstructure:"production_mode"`
}

// GetAddress returns the listen address.
func (s *ServerConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig holds the sqlite database settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// RedisConfig holds settings for the work queue and the live-progress
// side-channel.
type RedisConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	DB          int    `mapstructure:"db"`
	Password    string `mapstructure:"password"`
	QueueName   string `mapstructure:"queue_name"`
	TaskTTLDays int    `mapstructure:"task_ttl_days"`
}

// GetAddress returns the redis address.
func (r *RedisConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// GetTaskTTL returns how long live task metadata is retained.
func (r *RedisConfig) GetTaskTTL() time.Duration {
	return time.Duration(r.TaskTTLDays) * 24 * time.Hour
}

// JWTConfig holds token signing settings.
type JWTConfig struct {
	SecretKey          string `mapstructure:"secret_key"`
	Algorithm          string `mapstructure:"algorithm"`
	ExpireMinutes      int    `mapstructure:"expire_minutes"`
	ResetExpireMinutes int    `mapstructure:"reset_expire_minutes"`
}

// GetExpireDuration returns the session token lifetime.
func (j *JWTConfig) GetExpireDuration() time.Duration {
	return time.Duration(j.ExpireMinutes) * time.Minute
}

// GetResetExpireDuration returns the password reset token lifetime.
func (j *JWTConfig) GetResetExpireDuration() time.Duration {
	return time.Duration(j.ResetExpireMinutes) * time.Minute
}

// AdminConfig holds the bootstrap admin account.
type AdminConfig struct {
	Username string `mapstructure:"username"`
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

// CORSConfig holds cross-origin settings.
type CORSConfig struct {
	Origins          []string `mapstructure:"origins"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	AllowMethods     []string `mapstructure:"allow_methods"`
	AllowHeaders     []string `mapstructure:"allow_headers"`
}

// StorageConfig holds object storage settings for export artifacts.
type StorageConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// WorkerConfig holds background worker settings.
type WorkerConfig struct {
	Count int `mapstructure:"count"`
}

// PaginationConfig holds page sizing for feed endpoints.
type PaginationConfig struct {
	PostsPerPage    int `mapstructure:"posts_per_page"`
	MessagesPerPage int `mapstructure:"messages_per_page"`
}
