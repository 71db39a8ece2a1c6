package store

import (
	"database/sql"
	"errors"
	"strconv"

	"github.com/SaraMustafaCodes/vision-draw-finger-drawing/internal/canvas"
)

// Settings keys for the persisted brush style.
const (
	settingBrushColor = "brush_color"
	settingBrushWidth = "brush_width"
)

// SettingsRepository provides key-value settings persistence.
type SettingsRepository struct {
	db *sql.DB
}

// Settings returns the settings repository for this store.
func (s *Store) Settings() *SettingsRepository {
	return &SettingsRepository{db: s.db}
}

// Get retrieves a setting value by key.
func (r *SettingsRepository) Get(key string) (string, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

// Set stores a setting value, replacing any existing one.
func (r *SettingsRepository) Set(key, value string) error {
	_, err := r.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

// BrushStyle returns the persisted brush style, falling back to the
// default for anything missing or unparseable.
func (r *SettingsRepository) BrushStyle() canvas.Style {
	style := canvas.DefaultStyle()

	if color, err := r.Get(settingBrushColor); err == nil && color != "" {
		style.Color = color
	}
	if widthStr, err := r.Get(settingBrushWidth); err == nil {
		if width, err := strconv.ParseFloat(widthStr, 64); err == nil && width > 0 {
			style.Width = width
		}
	}

	return style
}

// SaveBrushStyle persists the brush style for the next session.
func (r *SettingsRepository) SaveBrushStyle(style canvas.Style) error {
	if err := r.Set(settingBrushColor, style.Color); err != nil {
		return err
	}
	return r.Set(settingBrushWidth, strconv.FormatFloat(style.Width, 'f', -1, 64))
}
