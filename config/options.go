package config

import (
	"daily-energy/internal/api"
	"daily-energy/internal/store"
)

const redisPrefix = "daily-energy"

// StoreOptions maps the store and database sections onto store.Open options.
func (c *Config) StoreOptions() store.Options {
	return store.Options{
		Driver:        c.Store.Driver,
		Path:          c.Store.Path,
		RedisAddr:     c.Store.RedisAddr,
		RedisPassword: c.Store.RedisPassword,
		RedisDB:       c.Store.RedisDB,
		RedisPrefix:   redisPrefix,
		Postgres: store.PostgresConfig{
			Host:         c.DB.Host,
			Port:         c.DB.Port,
			User:         c.DB.User,
			Password:     c.DB.Password,
			DBName:       c.DB.DBName,
			SSLMode:      c.DB.SSLMode,
			MaxOpenConns: c.DB.MaxOpenConns,
			MaxIdleConns: c.DB.MaxIdleConns,
			ConnLifetime: c.DB.ConnLifetime,
		},
	}
}

func (c *Config) ClientConfig(deviceID string) api.ClientConfig {
	return api.ClientConfig{
		BaseURL:       c.API.BaseURL,
		Timeout:       c.API.Timeout,
		UploadTimeout: c.API.UploadTimeout,
		DeviceID:      deviceID,
	}
}
