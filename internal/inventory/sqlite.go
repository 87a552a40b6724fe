package inventory

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/homematch/homematch/internal/models"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates a SQLite database at dbPath and initializes
// the schema. Parent directories are created if they do not exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS listings (
		id TEXT PRIMARY KEY,
		price REAL NOT NULL,
		area TEXT,
		size_sqm REAL,
		bedrooms INTEGER,
		bathrooms INTEGER,
		school_district TEXT,
		commute_minutes INTEGER,
		address TEXT,
		listing_date TEXT,
		property_type TEXT,
		metadata TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_listings_area ON listings(area);
	CREATE INDEX IF NOT EXISTS idx_listings_price ON listings(price);
	`
	_, err := db.Exec(schema)
	return err
}

const listingColumns = `id, price, area, size_sqm, bedrooms, bathrooms,
	school_district, commute_minutes, address, listing_date, property_type, metadata`

// CreateListing inserts a listing.
func (s *SQLiteStore) CreateListing(ctx context.Context, listing *models.Listing) error {
	metadataJSON, err := json.Marshal(listing.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO listings (`+listingColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		listing.ID, listing.Price, listing.Area, listing.SizeSqm,
		listing.Bedrooms, listing.Bathrooms, listing.SchoolDistrict,
		listing.CommuteMinutes, listing.Address, listing.ListingDate,
		listing.PropertyType, string(metadataJSON),
	)
	return err
}

// GetListing returns a listing by ID.
func (s *SQLiteStore) GetListing(ctx context.Context, id string) (*models.Listing, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+listingColumns+` FROM listings WHERE id = ?`, id)
	listing, err := scanListing(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("listing not found: %s", id)
	}
	return listing, err
}

// DeleteListing removes a listing by ID.
func (s *SQLiteStore) DeleteListing(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM listings WHERE id = ?`, id)
	return err
}

// ListListings returns listings ordered by ID with pagination.
func (s *SQLiteStore) ListListings(ctx context.Context, offset, limit int) ([]*models.Listing, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+listingColumns+` FROM listings ORDER BY id LIMIT ? OFFSET ?`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []*models.Listing
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, listing)
	}
	return listings, rows.Err()
}

// ReplaceAll swaps the stored inventory for the given listings in one
// transaction so readers never observe a half-loaded seed.
func (s *SQLiteStore) ReplaceAll(ctx context.Context, listings []*models.Listing) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM listings`); err != nil {
		return fmt.Errorf("failed to clear listings: %w", err)
	}
	for _, listing := range listings {
		metadataJSON, err := json.Marshal(listing.Metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal metadata: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO listings (`+listingColumns+`)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			listing.ID, listing.Price, listing.Area, listing.SizeSqm,
			listing.Bedrooms, listing.Bathrooms, listing.SchoolDistrict,
			listing.CommuteMinutes, listing.Address, listing.ListingDate,
			listing.PropertyType, string(metadataJSON),
		); err != nil {
			return fmt.Errorf("failed to insert listing %s: %w", listing.ID, err)
		}
	}
	return tx.Commit()
}

// CountListings returns the number of stored listings.
func (s *SQLiteStore) CountListings(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM listings`).Scan(&count)
	return count, err
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scannable interface {
	Scan(dest ...interface{}) error
}

func scanListing(row scannable) (*models.Listing, error) {
	var listing models.Listing
	var metadataJSON string
	err := row.Scan(
		&listing.ID, &listing.Price, &listing.Area, &listing.SizeSqm,
		&listing.Bedrooms, &listing.Bathrooms, &listing.SchoolDistrict,
		&listing.CommuteMinutes, &listing.Address, &listing.ListingDate,
		&listing.PropertyType, &metadataJSON,
	)
	if err != nil {
		return nil, err
	}
	if metadataJSON != "" && metadataJSON != "null" {
		if err := json.Unmarshal([]byte(metadataJSON), &listing.Metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	}
	return &listing, nil
}
