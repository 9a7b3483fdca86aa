package datasource

import (
	"context"
	"fmt"

	"pitchdeck/internal/domain"
)

// Config describes an external database to pull chart data from.
type Config struct {
	Name     string `json:"name"`
	Driver   string `json:"driver"` // sqlite, postgres, mysql, mongodb
	Host     string `json:"host,omitempty"`
	Port     int    `json:"port,omitempty"`
	Database string `json:"database,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	Path     string `json:"path,omitempty"`    // sqlite file path
	SSLMode  string `json:"sslMode,omitempty"` // postgres only
}

// Connector pulls chart-ready data out of an external database. Queries are
// written in the store's native language (SQL, or a JSON find spec for
// MongoDB); the connector maps result rows onto visual-block payloads.
type Connector interface {
	// TestConnection verifies connectivity.
	TestConnection(ctx context.Context) error

	// ChartPoints runs a query whose rows are (name, value) or
	// (name, value, color) and returns them as chart points.
	ChartPoints(ctx context.Context, query string) ([]domain.ChartPoint, error)

	// ScatterPoints runs a query whose rows are (x, y) or (x, y, color).
	ScatterPoints(ctx context.Context, query string) ([]domain.ScatterPoint, error)

	// Table runs a query and returns up to limit rows as a table payload.
	Table(ctx context.Context, query string, limit int) (domain.TableData, error)

	// Close releases the connection.
	Close() error
}

// Open creates a Connector for the configured driver.
func Open(cfg Config) (Connector, error) {
	switch cfg.Driver {
	case "sqlite":
		return newSQLConnector("sqlite", sqliteDSN(cfg))
	case "postgres":
		return newSQLConnector("postgres", postgresDSN(cfg))
	case "mysql":
		return newSQLConnector("mysql", mysqlDSN(cfg))
	case "mongodb":
		return newMongoConnector(cfg)
	default:
		return nil, fmt.Errorf("unsupported driver: %s", cfg.Driver)
	}
}
