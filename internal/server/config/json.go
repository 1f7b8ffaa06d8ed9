package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/petcare/internal/flagx"
	"github.com/dmitrijs2005/petcare/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations are
// read through timex.Duration so both "30m" and integer nanoseconds work.
// Fields left out of the file keep their current values.
type JsonConfig struct {
	HTTPAddr                     string          `json:"http_address"`
	GRPCHealthAddr               string          `json:"grpc_health_address"`
	DatabaseDSN                  string          `json:"database_dsn"`
	SecretKey                    string          `json:"secret_key"`
	AccessTokenValidityDuration  *timex.Duration `json:"access_token_validity"`
	RefreshTokenValidityDuration *timex.Duration `json:"refresh_token_validity"`
	TokenSweepInterval           *timex.Duration `json:"token_sweep_interval"`
	StorageBackend               string          `json:"storage_backend"`
	S3AccessKey                  string          `json:"s3_access_key"`
	S3SecretKey                  string          `json:"s3_secret_key"`
	S3Bucket                     string          `json:"s3_bucket"`
	S3Region                     string          `json:"s3_region"`
	S3BaseEndpoint               string          `json:"s3_endpoint"`
	S3UseSSL                     *bool           `json:"s3_use_ssl"`
	MaxUploadSize                int64           `json:"max_upload_size"`
	LoginRateLimit               float64         `json:"login_rate_limit"`
	LoginRateBurst               int             `json:"login_rate_burst"`
	ShutdownTimeout              *timex.Duration `json:"shutdown_timeout"`
	LogLevel                     string          `json:"log_level"`
}

// parseJson loads the file named by -c/-config (if any) into config.
// A missing or malformed file is a startup error and panics.
func parseJson(config *Config) {
	path := flagx.JsonConfigFlags()
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	c.applyTo(config)
}

func (c *JsonConfig) applyTo(config *Config) {
	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.GRPCHealthAddr, c.GRPCHealthAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.StorageBackend, c.StorageBackend)
	setString(&config.S3AccessKey, c.S3AccessKey)
	setString(&config.S3SecretKey, c.S3SecretKey)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.LogLevel, c.LogLevel)

	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RefreshTokenValidityDuration != nil {
		config.RefreshTokenValidityDuration = c.RefreshTokenValidityDuration.Duration
	}
	if c.TokenSweepInterval != nil {
		config.TokenSweepInterval = c.TokenSweepInterval.Duration
	}
	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	if c.S3UseSSL != nil {
		config.S3UseSSL = *c.S3UseSSL
	}
	if c.MaxUploadSize > 0 {
		config.MaxUploadSize = c.MaxUploadSize
	}
	if c.LoginRateLimit > 0 {
		config.LoginRateLimit = c.LoginRateLimit
	}
	if c.LoginRateBurst > 0 {
		config.LoginRateBurst = c.LoginRateBurst
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
