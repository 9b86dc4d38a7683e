package store

import (
	"context"
	"fmt"
	"strings"
)

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

type Options struct {
	Driver        string
	Path          string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
	Postgres      PostgresConfig
}

// Open builds the backend named by opts.Driver. The returned close func is
// never nil.
func Open(ctx context.Context, opts Options) (Store, func(), error) {
	switch strings.ToLower(opts.Driver) {
	case "", DriverMemory:
		return NewMemory(), func() {}, nil
	case DriverSQLite:
		path := opts.Path
		if path == "" {
			var err error
			if path, err = DefaultSQLitePath(); err != nil {
				return nil, nil, err
			}
		}
		s, err := OpenSQLite(path)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	case DriverPostgres:
		s, err := NewPostgres(ctx, opts.Postgres)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case DriverRedis:
		s, err := DialRedis(ctx, opts.RedisAddr, opts.RedisPassword, opts.RedisDB, opts.RedisPrefix)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", opts.Driver)
	}
}
