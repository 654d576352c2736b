// ABOUTME: SQLite storage implementation for conversion history
// ABOUTME: Provides local-only persistence using pure Go SQLite driver

package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/harper/eci2ecef/internal/models"
	_ "modernc.org/sqlite"
)

// SQLiteDB implements Repository with a local SQLite database.
type SQLiteDB struct {
	db   *sql.DB
	path string
}

// Compile-time check that SQLiteDB implements Repository.
var _ Repository = (*SQLiteDB)(nil)

// NewSQLiteDB creates a new SQLite database at the given path.
// Creates the directory and database file if they don't exist.
func NewSQLiteDB(path string) (*SQLiteDB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil { //nolint:gosec // 0750 is appropriate for user data directory
		return nil, fmt.Errorf("create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &SQLiteDB{db: db, path: path}

	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// Path returns the database file location.
func (s *SQLiteDB) Path() string {
	return s.path
}

// migrate creates or updates the database schema.
// Numeric columns are nullable because SQLite stores NaN as NULL.
func (s *SQLiteDB) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS conversions (
			id TEXT PRIMARY KEY,
			model TEXT NOT NULL,
			year REAL, month REAL, day REAL,
			hour REAL, minute REAL, second REAL,
			eci_x REAL, eci_y REAL, eci_z REAL,
			out_x REAL, out_y REAL, out_z REAL,
			gmst REAL,
			julian_date REAL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_conversions_created_at ON conversions(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

// Reset clears all data from the database.
func (s *SQLiteDB) Reset() error {
	_, err := s.db.Exec("DELETE FROM conversions")
	return err
}

const conversionColumns = `id, model, year, month, day, hour, minute, second,
	eci_x, eci_y, eci_z, out_x, out_y, out_z, gmst, julian_date, created_at`

// CreateConversion stores a conversion record.
func (s *SQLiteDB) CreateConversion(c *models.Conversion) error {
	e, in, out := c.Epoch, c.ECI, c.Output
	_, err := s.db.Exec(
		`INSERT INTO conversions (`+conversionColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID.String(), c.Model,
		nullable(e.Year), nullable(e.Month), nullable(e.Day),
		nullable(e.Hour), nullable(e.Minute), nullable(e.Second),
		nullable(in.X), nullable(in.Y), nullable(in.Z),
		nullable(out.X), nullable(out.Y), nullable(out.Z),
		nullable(c.GMST), nullable(c.JulianDate), c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert conversion: %w", err)
	}
	return nil
}

// GetConversion retrieves a conversion by its UUID.
func (s *SQLiteDB) GetConversion(id uuid.UUID) (*models.Conversion, error) {
	row := s.db.QueryRow(
		"SELECT "+conversionColumns+" FROM conversions WHERE id = ?",
		id.String(),
	)
	c, err := scanConversion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return c, err
}

// ListConversions returns conversions sorted by created_at descending (newest first).
func (s *SQLiteDB) ListConversions(limit int) ([]*models.Conversion, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.Query(
		"SELECT "+conversionColumns+" FROM conversions ORDER BY created_at DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query conversions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var conversions []*models.Conversion
	for rows.Next() {
		c, err := scanConversion(rows)
		if err != nil {
			return nil, err
		}
		conversions = append(conversions, c)
	}
	return conversions, rows.Err()
}

// CountConversions returns the number of stored conversions.
func (s *SQLiteDB) CountConversions() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM conversions").Scan(&n); err != nil {
		return 0, fmt.Errorf("count conversions: %w", err)
	}
	return n, nil
}

// DeleteConversion removes a single conversion.
func (s *SQLiteDB) DeleteConversion(id uuid.UUID) error {
	res, err := s.db.Exec("DELETE FROM conversions WHERE id = ?", id.String())
	if err != nil {
		return fmt.Errorf("delete conversion: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanConversion(row rowScanner) (*models.Conversion, error) {
	var idStr string
	var c models.Conversion
	var f [14]sql.NullFloat64
	dest := []any{&idStr, &c.Model}
	for i := range f {
		dest = append(dest, &f[i])
	}
	dest = append(dest, &c.CreatedAt)

	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan conversion: %w", err)
	}

	v := func(i int) float64 {
		if !f[i].Valid {
			return math.NaN()
		}
		return f[i].Float64
	}
	c.ID, _ = uuid.Parse(idStr)
	c.Epoch = models.Epoch{Year: v(0), Month: v(1), Day: v(2), Hour: v(3), Minute: v(4), Second: v(5)}
	c.ECI = models.Vector3{X: v(6), Y: v(7), Z: v(8)}
	c.Output = models.Vector3{X: v(9), Y: v(10), Z: v(11)}
	c.GMST = v(12)
	c.JulianDate = v(13)
	return &c, nil
}

// nullable maps NaN to NULL so it survives the round trip.
func nullable(f float64) sql.NullFloat64 {
	if math.IsNaN(f) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: f, Valid: true}
}
