package service

import (
	"context"
	"fmt"

	"pitchdeck/internal/datasource"
	"pitchdeck/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Import Service — visual blocks from external databases
// ─────────────────────────────────────────────────────────────

// ImportService fills visual blocks with real data pulled from an external
// database, as an alternative to AI-generated sample data.
type ImportService struct {
	blocks *BlockService
}

func NewImportService(blocks *BlockService) *ImportService {
	return &ImportService{blocks: blocks}
}

// tableRowLimit keeps imported tables presentable on a slide.
const tableRowLimit = 20

// ImportVisual connects to the configured database, runs the query, and
// appends the result to the slide as a visual block of the given type.
func (s *ImportService) ImportVisual(ctx context.Context, slideID string, visualType domain.VisualType, cfg datasource.Config, query string) (*domain.Block, error) {
	conn, err := datasource.Open(cfg)
	if err != nil {
		return nil, &domain.ExternalServiceError{Op: "openDatasource", SlideID: slideID, Err: err}
	}
	defer conn.Close()

	var data domain.VisualData
	switch visualType {
	case domain.VisualTypePie, domain.VisualTypeBar, domain.VisualTypeLine:
		data.Points, err = conn.ChartPoints(ctx, query)
	case domain.VisualTypeScatter:
		data.Scatter, err = conn.ScatterPoints(ctx, query)
	case domain.VisualTypeTable:
		var table domain.TableData
		table, err = conn.Table(ctx, query, tableRowLimit)
		data.Table = &table
	default:
		return nil, &domain.ValidationError{Field: "visualType", Reason: fmt.Sprintf("unknown visual type %q", visualType)}
	}
	if err != nil {
		return nil, &domain.ExternalServiceError{Op: "importVisual", SlideID: slideID, Err: err}
	}
	return s.blocks.AddVisualBlock(ctx, slideID, visualType, data)
}

// TestDatasource verifies connectivity to a configured database.
func (s *ImportService) TestDatasource(ctx context.Context, cfg datasource.Config) error {
	conn, err := datasource.Open(cfg)
	if err != nil {
		return err
	}
	defer conn.Close()
	return conn.TestConnection(ctx)
}
