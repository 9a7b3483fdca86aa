package datasource

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"pitchdeck/internal/domain"
)

// sqlConnector is the shared implementation for SQLite, Postgres, and MySQL.
type sqlConnector struct {
	driverName string
	db         *sql.DB
}

func newSQLConnector(driverName, dsn string) (*sqlConnector, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driverName, err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(10 * time.Minute)
	return &sqlConnector{driverName: driverName, db: db}, nil
}

func (c *sqlConnector) TestConnection(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return c.db.PingContext(ctx)
}

func (c *sqlConnector) ChartPoints(ctx context.Context, query string) ([]domain.ChartPoint, error) {
	rows, cols, err := c.query(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(cols) < 2 {
		return nil, fmt.Errorf("chart query must select at least (name, value), got %d columns", len(cols))
	}
	var points []domain.ChartPoint
	for _, row := range rows {
		p := domain.ChartPoint{Name: formatValue(row[0])}
		if p.Value, err = toFloat(row[1]); err != nil {
			return nil, fmt.Errorf("value column: %w", err)
		}
		if len(row) > 2 {
			p.Color = formatValue(row[2])
		}
		points = append(points, p)
	}
	return points, nil
}

func (c *sqlConnector) ScatterPoints(ctx context.Context, query string) ([]domain.ScatterPoint, error) {
	rows, cols, err := c.query(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(cols) < 2 {
		return nil, fmt.Errorf("scatter query must select at least (x, y), got %d columns", len(cols))
	}
	var points []domain.ScatterPoint
	for _, row := range rows {
		var p domain.ScatterPoint
		if p.X, err = toFloat(row[0]); err != nil {
			return nil, fmt.Errorf("x column: %w", err)
		}
		if p.Y, err = toFloat(row[1]); err != nil {
			return nil, fmt.Errorf("y column: %w", err)
		}
		if len(row) > 2 {
			p.Color = formatValue(row[2])
		}
		points = append(points, p)
	}
	return points, nil
}

func (c *sqlConnector) Table(ctx context.Context, query string, limit int) (domain.TableData, error) {
	rows, cols, err := c.query(ctx, query)
	if err != nil {
		return domain.TableData{}, err
	}
	if limit <= 0 || limit > len(rows) {
		limit = len(rows)
	}
	out := domain.TableData{Columns: cols}
	for _, row := range rows[:limit] {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = formatValue(v)
		}
		out.Rows = append(out.Rows, cells)
	}
	return out, nil
}

func (c *sqlConnector) Close() error {
	return c.db.Close()
}

// query runs the statement and drains all rows into memory. Chart payloads
// are small by nature; callers cap row counts in the query itself.
func (c *sqlConnector) query(ctx context.Context, query string) ([][]any, []string, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("columns: %w", err)
	}

	var out [][]any
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, fmt.Errorf("scan row: %w", err)
		}
		out = append(out, values)
	}
	return out, cols, rows.Err()
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(x)
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", x)
	}
}

func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case []byte:
		return strconv.ParseFloat(string(x), 64)
	case string:
		return strconv.ParseFloat(x, 64)
	case nil:
		return 0, fmt.Errorf("null value")
	default:
		return 0, fmt.Errorf("not numeric: %T", v)
	}
}
