// Package db reads the repository dataset from a Postgres table.
package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/spf13/viper"

	"repodash/logger"
)

// DB represents a database connection
type DB struct {
	conn *sqlx.DB
}

// PoolConfig bounds the connection pool.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func setDefaults() {
	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", "5432")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 10)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
}

// DSN builds the connection string from POSTGRES_* settings.
func DSN() string {
	setDefaults()
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s port=%s host=%s sslmode=%s",
		viper.GetString("POSTGRES_USER"),
		viper.GetString("POSTGRES_PASSWORD"),
		viper.GetString("POSTGRES_DB"),
		viper.GetString("POSTGRES_PORT"),
		viper.GetString("POSTGRES_HOST"),
		viper.GetString("POSTGRES_SSLMODE"),
	)
}

// Pool reads the DB_MAX_* settings. Unparseable values fall back to the
// defaults.
func Pool() PoolConfig {
	setDefaults()
	pool := PoolConfig{
		MaxOpenConns:    viper.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
		ConnMaxLifetime: 5 * time.Minute,
	}
	if pool.MaxOpenConns <= 0 {
		pool.MaxOpenConns = 10
	}
	if pool.MaxIdleConns < 0 {
		pool.MaxIdleConns = 5
	}
	if d, err := time.ParseDuration(viper.GetString("DB_CONN_MAX_LIFETIME")); err == nil {
		pool.ConnMaxLifetime = d
	}
	return pool
}

// New connects to Postgres using the POSTGRES_* and DB_MAX_* settings.
func New() (*DB, error) {
	dsn := DSN()
	logger.Info("Connecting to database",
		zap.String("host", viper.GetString("POSTGRES_HOST")),
		zap.String("dbname", viper.GetString("POSTGRES_DB")))

	conn, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseConnection, err)
	}

	pool := Pool()
	conn.SetMaxOpenConns(pool.MaxOpenConns)
	conn.SetMaxIdleConns(pool.MaxIdleConns)
	conn.SetConnMaxLifetime(pool.ConnMaxLifetime)

	logger.Info("Database connection established",
		zap.Int("max_open_conns", pool.MaxOpenConns),
		zap.Int("max_idle_conns", pool.MaxIdleConns),
		zap.Duration("conn_max_lifetime", pool.ConnMaxLifetime))
	return &DB{conn: conn}, nil
}

// NewWithConn wraps an existing connection.
func NewWithConn(conn *sqlx.DB) *DB {
	return &DB{conn: conn}
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}
