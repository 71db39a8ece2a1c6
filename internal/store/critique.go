package store

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Critique is one saved analysis of the drawing surface.
type Critique struct {
	ID          string
	StrokeCount int
	Feedback    string
	CreatedAt   time.Time
}

// CritiqueRepository provides persistence for critiques.
type CritiqueRepository struct {
	db *sql.DB
}

// Critiques returns the critique repository for this store.
func (s *Store) Critiques() *CritiqueRepository {
	return &CritiqueRepository{db: s.db}
}

// Create inserts a new critique into the database.
func (r *CritiqueRepository) Create(c *Critique) error {
	c.CreatedAt = time.Now()

	_, err := r.db.Exec(
		`INSERT INTO critiques (id, stroke_count, feedback, created_at)
		 VALUES (?, ?, ?, ?)`,
		c.ID, c.StrokeCount, c.Feedback, c.CreatedAt,
	)
	return err
}

// GetByID retrieves a critique by its ID.
func (r *CritiqueRepository) GetByID(id string) (*Critique, error) {
	c := &Critique{}

	err := r.db.QueryRow(
		`SELECT id, stroke_count, feedback, created_at
		 FROM critiques WHERE id = ?`,
		id,
	).Scan(&c.ID, &c.StrokeCount, &c.Feedback, &c.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return c, nil
}

// List retrieves critiques newest-first, at most limit rows (0 means all).
func (r *CritiqueRepository) List(limit int) ([]*Critique, error) {
	query := `SELECT id, stroke_count, feedback, created_at
	          FROM critiques ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var critiques []*Critique
	for rows.Next() {
		c := &Critique{}
		if err := rows.Scan(&c.ID, &c.StrokeCount, &c.Feedback, &c.CreatedAt); err != nil {
			return nil, err
		}
		critiques = append(critiques, c)
	}

	return critiques, rows.Err()
}

// Delete removes a critique by ID.
func (r *CritiqueRepository) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM critiques WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
