// ABOUTME: Repository interfaces for conversion history storage
// ABOUTME: Enables testability and storage backend swapping

package storage

import (
	"github.com/google/uuid"
	"github.com/harper/eci2ecef/internal/models"
)

// ConversionRepository defines operations for managing recorded conversions.
type ConversionRepository interface {
	CreateConversion(c *models.Conversion) error
	GetConversion(id uuid.UUID) (*models.Conversion, error)
	// ListConversions returns the newest conversions first. A limit <= 0
	// returns every record.
	ListConversions(limit int) ([]*models.Conversion, error)
	CountConversions() (int, error)
	DeleteConversion(id uuid.UUID) error
}

// Repository combines conversion operations with lifecycle management.
type Repository interface {
	ConversionRepository
	Close() error
	Reset() error
}
