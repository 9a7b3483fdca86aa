package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"pitchdeck/internal/domain"
)

// mongoConnector implements Connector for MongoDB. Queries are JSON find
// specs rather than SQL:
//
//	{"collection": "sales", "filter": {"year": 2025},
//	 "name": "region", "value": "revenue", "limit": 10}
//
// "name"/"value" (or "x"/"y" for scatter) name the document fields to map
// onto the chart axes.
type mongoConnector struct {
	client *mongo.Client
	dbName string
}

type mongoQuery struct {
	Collection string         `json:"collection"`
	Filter     map[string]any `json:"filter,omitempty"`
	Sort       map[string]any `json:"sort,omitempty"`
	Limit      int64          `json:"limit,omitempty"`
	Name       string         `json:"name,omitempty"`
	Value      string         `json:"value,omitempty"`
	X          string         `json:"x,omitempty"`
	Y          string         `json:"y,omitempty"`
	Color      string         `json:"color,omitempty"`
	Columns    []string       `json:"columns,omitempty"`
}

func newMongoConnector(cfg Config) (*mongoConnector, error) {
	var uri string
	if strings.HasPrefix(cfg.Host, "mongodb://") || strings.HasPrefix(cfg.Host, "mongodb+srv://") {
		uri = cfg.Host
	} else {
		port := cfg.Port
		if port == 0 {
			port = 27017
		}
		if cfg.Username != "" {
			uri = fmt.Sprintf("mongodb://%s:%s@%s:%d", cfg.Username, cfg.Password, cfg.Host, port)
		} else {
			uri = fmt.Sprintf("mongodb://%s:%d", cfg.Host, port)
		}
	}
	dbName := cfg.Database
	if dbName == "" {
		dbName = "test"
	}
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	return &mongoConnector{client: client, dbName: dbName}, nil
}

func (c *mongoConnector) TestConnection(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return c.client.Ping(ctx, nil)
}

func (c *mongoConnector) ChartPoints(ctx context.Context, query string) ([]domain.ChartPoint, error) {
	q, docs, err := c.find(ctx, query)
	if err != nil {
		return nil, err
	}
	if q.Name == "" || q.Value == "" {
		return nil, fmt.Errorf(`chart query needs "name" and "value" field mappings`)
	}
	var points []domain.ChartPoint
	for _, doc := range docs {
		p := domain.ChartPoint{Name: formatValue(doc[q.Name])}
		if p.Value, err = toFloat(doc[q.Value]); err != nil {
			return nil, fmt.Errorf("field %q: %w", q.Value, err)
		}
		if q.Color != "" {
			p.Color = formatValue(doc[q.Color])
		}
		points = append(points, p)
	}
	return points, nil
}

func (c *mongoConnector) ScatterPoints(ctx context.Context, query string) ([]domain.ScatterPoint, error) {
	q, docs, err := c.find(ctx, query)
	if err != nil {
		return nil, err
	}
	if q.X == "" || q.Y == "" {
		return nil, fmt.Errorf(`scatter query needs "x" and "y" field mappings`)
	}
	var points []domain.ScatterPoint
	for _, doc := range docs {
		var p domain.ScatterPoint
		if p.X, err = toFloat(doc[q.X]); err != nil {
			return nil, fmt.Errorf("field %q: %w", q.X, err)
		}
		if p.Y, err = toFloat(doc[q.Y]); err != nil {
			return nil, fmt.Errorf("field %q: %w", q.Y, err)
		}
		if q.Color != "" {
			p.Color = formatValue(doc[q.Color])
		}
		points = append(points, p)
	}
	return points, nil
}

func (c *mongoConnector) Table(ctx context.Context, query string, limit int) (domain.TableData, error) {
	q, docs, err := c.find(ctx, query)
	if err != nil {
		return domain.TableData{}, err
	}
	cols := q.Columns
	if len(cols) == 0 && len(docs) > 0 {
		for k := range docs[0] {
			if k != "_id" {
				cols = append(cols, k)
			}
		}
	}
	if limit <= 0 || limit > len(docs) {
		limit = len(docs)
	}
	out := domain.TableData{Columns: cols}
	for _, doc := range docs[:limit] {
		row := make([]string, len(cols))
		for i, col := range cols {
			row[i] = formatValue(doc[col])
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

func (c *mongoConnector) Close() error {
	return c.client.Disconnect(context.Background())
}

func (c *mongoConnector) find(ctx context.Context, query string) (*mongoQuery, []bson.M, error) {
	var q mongoQuery
	if err := json.Unmarshal([]byte(query), &q); err != nil {
		return nil, nil, fmt.Errorf("parse query: %w", err)
	}
	if q.Collection == "" {
		return nil, nil, fmt.Errorf(`query needs a "collection"`)
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := options.Find()
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}
	if len(q.Sort) > 0 {
		sort := bson.D{}
		for k, v := range q.Sort {
			sort = append(sort, bson.E{Key: k, Value: v})
		}
		opts.SetSort(sort)
	}
	filter := q.Filter
	if filter == nil {
		filter = map[string]any{}
	}

	coll := c.client.Database(c.dbName).Collection(q.Collection)
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("find: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, nil, fmt.Errorf("read cursor: %w", err)
	}
	return &q, docs, nil
}
