package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"pitchdeck/internal/domain"
)

// BlockStore implements domain.BlockStore using SQLite.
type BlockStore struct {
	db *DB
}

func NewBlockStore(db *DB) *BlockStore {
	return &BlockStore{db: db}
}

const blockColumns = `id, slide_id, type, x, y, width, height, content, is_editable, visual_type, data_json, config_json, sort_order, created_at, updated_at`

func (s *BlockStore) CreateBlock(b *domain.Block) error {
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now
	dataJSON, err := json.Marshal(b.Data)
	if err != nil {
		return fmt.Errorf("marshal block data: %w", err)
	}
	var order int
	if err := s.db.Conn().QueryRow(`SELECT COALESCE(MAX(sort_order), -1) + 1 FROM blocks WHERE slide_id = ?`, b.SlideID).Scan(&order); err != nil {
		return fmt.Errorf("next sort order: %w", err)
	}
	_, err = s.db.Conn().Exec(
		`INSERT INTO blocks (`+blockColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.SlideID, b.Type, b.X, b.Y, b.Width, b.Height, b.Content, b.IsEditable,
		b.VisualType, string(dataJSON), b.ConfigJSON, order, b.CreatedAt, b.UpdatedAt,
	)
	return err
}

func scanBlock(scan func(dest ...any) error) (*domain.Block, error) {
	b := &domain.Block{}
	var dataJSON string
	var order int
	if err := scan(&b.ID, &b.SlideID, &b.Type, &b.X, &b.Y, &b.Width, &b.Height, &b.Content,
		&b.IsEditable, &b.VisualType, &dataJSON, &b.ConfigJSON, &order, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	if dataJSON != "" && dataJSON != "{}" {
		if err := json.Unmarshal([]byte(dataJSON), &b.Data); err != nil {
			return nil, fmt.Errorf("unmarshal block data: %w", err)
		}
	}
	return b, nil
}

func (s *BlockStore) GetBlock(id string) (*domain.Block, error) {
	row := s.db.Conn().QueryRow(`SELECT `+blockColumns+` FROM blocks WHERE id = ?`, id)
	b, err := scanBlock(row.Scan)
	if err != nil {
		return nil, fmt.Errorf("get block: %w", err)
	}
	return b, nil
}

func (s *BlockStore) ListBlocks(slideID string) ([]domain.Block, error) {
	rows, err := s.db.Conn().Query(
		`SELECT `+blockColumns+` FROM blocks WHERE slide_id = ? ORDER BY sort_order ASC`, slideID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blocks []domain.Block
	for rows.Next() {
		b, err := scanBlock(rows.Scan)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, *b)
	}
	return blocks, rows.Err()
}

func (s *BlockStore) UpdateBlock(b *domain.Block) error {
	b.UpdatedAt = time.Now()
	dataJSON, err := json.Marshal(b.Data)
	if err != nil {
		return fmt.Errorf("marshal block data: %w", err)
	}
	_, err = s.db.Conn().Exec(
		`UPDATE blocks SET type = ?, x = ?, y = ?, width = ?, height = ?, content = ?, is_editable = ?, visual_type = ?, data_json = ?, config_json = ?, updated_at = ? WHERE id = ?`,
		b.Type, b.X, b.Y, b.Width, b.Height, b.Content, b.IsEditable, b.VisualType,
		string(dataJSON), b.ConfigJSON, b.UpdatedAt, b.ID,
	)
	return err
}

func (s *BlockStore) DeleteBlock(id string) error {
	_, err := s.db.Conn().Exec(`DELETE FROM blocks WHERE id = ?`, id)
	return err
}

func (s *BlockStore) DeleteBlocksBySlide(slideID string) error {
	_, err := s.db.Conn().Exec(`DELETE FROM blocks WHERE slide_id = ?`, slideID)
	return err
}

// ReplaceSlideBlocks atomically replaces all blocks for a slide, preserving
// the given order.
func (s *BlockStore) ReplaceSlideBlocks(slideID string, blocks []domain.Block) error {
	tx, err := s.db.Conn().Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM blocks WHERE slide_id = ?`, slideID); err != nil {
		return fmt.Errorf("delete blocks: %w", err)
	}

	now := time.Now()
	for i, b := range blocks {
		dataJSON, err := json.Marshal(b.Data)
		if err != nil {
			return fmt.Errorf("marshal block data: %w", err)
		}
		_, err = tx.Exec(
			`INSERT INTO blocks (`+blockColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			b.ID, slideID, b.Type, b.X, b.Y, b.Width, b.Height, b.Content, b.IsEditable,
			b.VisualType, string(dataJSON), b.ConfigJSON, i, now, now,
		)
		if err != nil {
			return fmt.Errorf("insert block %s: %w", b.ID, err)
		}
	}

	return tx.Commit()
}
