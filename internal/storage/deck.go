package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"pitchdeck/internal/domain"
)

// DeckStore implements domain.DeckStore using SQLite.
type DeckStore struct {
	db     *DB
	blocks *BlockStore
}

func NewDeckStore(db *DB, blocks *BlockStore) *DeckStore {
	return &DeckStore{db: db, blocks: blocks}
}

const slideColumns = `id, deck_id, title, content, design, sort_order, image_url, video_url, theme, created_at, updated_at`

// ── Decks ──────────────────────────────────────────────────

func (s *DeckStore) CreateDeck(d *domain.Deck) error {
	now := time.Now()
	d.CreatedAt = now
	d.UpdatedAt = now
	_, err := s.db.Conn().Exec(
		`INSERT INTO decks (id, title, description, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		d.ID, d.Title, d.Description, d.CreatedAt, d.UpdatedAt,
	)
	return err
}

// GetDeck loads a deck with its slides and their blocks.
func (s *DeckStore) GetDeck(id string) (*domain.Deck, error) {
	d := &domain.Deck{}
	err := s.db.Conn().QueryRow(
		`SELECT id, title, description, created_at, updated_at FROM decks WHERE id = ?`, id,
	).Scan(&d.ID, &d.Title, &d.Description, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get deck: %w", err)
	}
	slides, err := s.ListSlides(id)
	if err != nil {
		return nil, err
	}
	d.Slides = slides
	return d, nil
}

// ListDecks returns deck rows without slides.
func (s *DeckStore) ListDecks() ([]domain.Deck, error) {
	rows, err := s.db.Conn().Query(
		`SELECT id, title, description, created_at, updated_at FROM decks ORDER BY updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var decks []domain.Deck
	for rows.Next() {
		var d domain.Deck
		if err := rows.Scan(&d.ID, &d.Title, &d.Description, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		decks = append(decks, d)
	}
	return decks, rows.Err()
}

func (s *DeckStore) UpdateDeck(d *domain.Deck) error {
	d.UpdatedAt = time.Now()
	_, err := s.db.Conn().Exec(
		`UPDATE decks SET title = ?, description = ?, updated_at = ? WHERE id = ?`,
		d.Title, d.Description, d.UpdatedAt, d.ID,
	)
	return err
}

// SaveDeck replaces the deck row plus all slides and blocks in one
// transaction. Used by the save boundary so the persisted deck always
// matches the in-memory value.
func (s *DeckStore) SaveDeck(d *domain.Deck) error {
	tx, err := s.db.Conn().Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	d.UpdatedAt = now

	res, err := tx.Exec(
		`UPDATE decks SET title = ?, description = ?, updated_at = ? WHERE id = ?`,
		d.Title, d.Description, d.UpdatedAt, d.ID,
	)
	if err != nil {
		return fmt.Errorf("update deck: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		d.CreatedAt = now
		if _, err := tx.Exec(
			`INSERT INTO decks (id, title, description, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
			d.ID, d.Title, d.Description, d.CreatedAt, d.UpdatedAt,
		); err != nil {
			return fmt.Errorf("insert deck: %w", err)
		}
	}

	if _, err := tx.Exec(
		`DELETE FROM blocks WHERE slide_id IN (SELECT id FROM slides WHERE deck_id = ?)`, d.ID,
	); err != nil {
		return fmt.Errorf("delete blocks: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM slides WHERE deck_id = ?`, d.ID); err != nil {
		return fmt.Errorf("delete slides: %w", err)
	}

	for i := range d.Slides {
		sl := &d.Slides[i]
		sl.DeckID = d.ID
		sl.Order = i
		if _, err := tx.Exec(
			`INSERT INTO slides (`+slideColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			sl.ID, d.ID, sl.Title, sl.Content, sl.Design, i, sl.ImageURL, sl.VideoURL, sl.Theme, now, now,
		); err != nil {
			return fmt.Errorf("insert slide %s: %w", sl.ID, err)
		}
		for j, b := range sl.Blocks {
			dataJSON, err := json.Marshal(b.Data)
			if err != nil {
				return fmt.Errorf("marshal block data: %w", err)
			}
			if _, err := tx.Exec(
				`INSERT INTO blocks (`+blockColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				b.ID, sl.ID, b.Type, b.X, b.Y, b.Width, b.Height, b.Content, b.IsEditable,
				b.VisualType, string(dataJSON), b.ConfigJSON, j, now, now,
			); err != nil {
				return fmt.Errorf("insert block %s: %w", b.ID, err)
			}
		}
	}

	return tx.Commit()
}

func (s *DeckStore) DeleteDeck(id string) error {
	tx, err := s.db.Conn().Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`DELETE FROM blocks WHERE slide_id IN (SELECT id FROM slides WHERE deck_id = ?)`, id,
	); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM slides WHERE deck_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM analysis_snapshots WHERE deck_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM decks WHERE id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

// ── Slides ─────────────────────────────────────────────────

func (s *DeckStore) CreateSlide(sl *domain.Slide) error {
	now := time.Now()
	sl.CreatedAt = now
	sl.UpdatedAt = now
	_, err := s.db.Conn().Exec(
		`INSERT INTO slides (`+slideColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sl.ID, sl.DeckID, sl.Title, sl.Content, sl.Design, sl.Order, sl.ImageURL, sl.VideoURL, sl.Theme, sl.CreatedAt, sl.UpdatedAt,
	)
	return err
}

func scanSlide(scan func(dest ...any) error) (*domain.Slide, error) {
	sl := &domain.Slide{}
	if err := scan(&sl.ID, &sl.DeckID, &sl.Title, &sl.Content, &sl.Design, &sl.Order,
		&sl.ImageURL, &sl.VideoURL, &sl.Theme, &sl.CreatedAt, &sl.UpdatedAt); err != nil {
		return nil, err
	}
	return sl, nil
}

// GetSlide loads a slide with its blocks.
func (s *DeckStore) GetSlide(id string) (*domain.Slide, error) {
	row := s.db.Conn().QueryRow(`SELECT `+slideColumns+` FROM slides WHERE id = ?`, id)
	sl, err := scanSlide(row.Scan)
	if err != nil {
		return nil, fmt.Errorf("get slide: %w", err)
	}
	blocks, err := s.blocks.ListBlocks(id)
	if err != nil {
		return nil, err
	}
	sl.Blocks = blocks
	return sl, nil
}

// ListSlides returns a deck's slides with blocks, in deck order.
func (s *DeckStore) ListSlides(deckID string) ([]domain.Slide, error) {
	rows, err := s.db.Conn().Query(
		`SELECT `+slideColumns+` FROM slides WHERE deck_id = ? ORDER BY sort_order ASC`, deckID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slides []domain.Slide
	for rows.Next() {
		sl, err := scanSlide(rows.Scan)
		if err != nil {
			return nil, err
		}
		slides = append(slides, *sl)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range slides {
		blocks, err := s.blocks.ListBlocks(slides[i].ID)
		if err != nil {
			return nil, err
		}
		slides[i].Blocks = blocks
	}
	return slides, nil
}

func (s *DeckStore) UpdateSlide(sl *domain.Slide) error {
	sl.UpdatedAt = time.Now()
	_, err := s.db.Conn().Exec(
		`UPDATE slides SET title = ?, content = ?, design = ?, sort_order = ?, image_url = ?, video_url = ?, theme = ?, updated_at = ? WHERE id = ?`,
		sl.Title, sl.Content, sl.Design, sl.Order, sl.ImageURL, sl.VideoURL, sl.Theme, sl.UpdatedAt, sl.ID,
	)
	return err
}

func (s *DeckStore) DeleteSlidesByDeck(deckID string) error {
	if _, err := s.db.Conn().Exec(
		`DELETE FROM blocks WHERE slide_id IN (SELECT id FROM slides WHERE deck_id = ?)`, deckID,
	); err != nil {
		return err
	}
	_, err := s.db.Conn().Exec(`DELETE FROM slides WHERE deck_id = ?`, deckID)
	return err
}
