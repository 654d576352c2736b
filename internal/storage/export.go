// ABOUTME: Export and import functionality for conversion history
// ABOUTME: Supports YAML backup format and markdown export

package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harper/eci2ecef/internal/models"
	"gopkg.in/yaml.v3"
)

// BackupVersion is the current backup format version.
const BackupVersion = "1.0"

// backupTool identifies backups written by this program.
const backupTool = "eci2ecef"

// Backup represents the YAML backup format.
type Backup struct {
	Version     string             `yaml:"version"`
	ExportedAt  time.Time          `yaml:"exported_at"`
	Tool        string             `yaml:"tool"`
	Conversions []ConversionBackup `yaml:"conversions"`
}

// ConversionBackup represents a conversion in the backup format.
type ConversionBackup struct {
	ID         string         `yaml:"id"`
	Model      string         `yaml:"model"`
	Epoch      models.Epoch   `yaml:"epoch"`
	ECI        models.Vector3 `yaml:"eci_km"`
	Output     models.Vector3 `yaml:"output_km"`
	GMST       float64        `yaml:"gmst_rad"`
	JulianDate float64        `yaml:"julian_date"`
	CreatedAt  time.Time      `yaml:"created_at"`
}

// ExportToYAML exports all conversions to YAML format, newest first.
func ExportToYAML(repo Repository) ([]byte, error) {
	conversions, err := repo.ListConversions(0)
	if err != nil {
		return nil, fmt.Errorf("list conversions: %w", err)
	}

	backup := Backup{
		Version:     BackupVersion,
		ExportedAt:  time.Now().UTC(),
		Tool:        backupTool,
		Conversions: make([]ConversionBackup, len(conversions)),
	}

	for i, c := range conversions {
		backup.Conversions[i] = ConversionBackup{
			ID:         c.ID.String(),
			Model:      c.Model,
			Epoch:      c.Epoch,
			ECI:        c.ECI,
			Output:     c.Output,
			GMST:       c.GMST,
			JulianDate: c.JulianDate,
			CreatedAt:  c.CreatedAt,
		}
	}

	return yaml.Marshal(backup)
}

// ImportFromYAML restores conversions from a YAML backup. Records whose ID
// already exists are skipped. Returns the number of records imported.
func ImportFromYAML(repo Repository, data []byte) (int, error) {
	var backup Backup
	if err := yaml.Unmarshal(data, &backup); err != nil {
		return 0, fmt.Errorf("parse yaml: %w", err)
	}

	if backup.Version != BackupVersion {
		return 0, fmt.Errorf("unsupported backup version: %s (expected %s)", backup.Version, BackupVersion)
	}

	if backup.Tool != backupTool {
		return 0, fmt.Errorf("wrong tool: %s (expected %s)", backup.Tool, backupTool)
	}

	imported := 0
	for _, cb := range backup.Conversions {
		id, err := uuid.Parse(cb.ID)
		if err != nil {
			return imported, fmt.Errorf("invalid conversion ID %s: %w", cb.ID, err)
		}

		if _, err := repo.GetConversion(id); err == nil {
			continue
		}

		c := &models.Conversion{
			ID:         id,
			Model:      cb.Model,
			Epoch:      cb.Epoch,
			ECI:        cb.ECI,
			Output:     cb.Output,
			GMST:       cb.GMST,
			JulianDate: cb.JulianDate,
			CreatedAt:  cb.CreatedAt,
		}
		if err := repo.CreateConversion(c); err != nil {
			return imported, fmt.Errorf("create conversion %s: %w", cb.ID, err)
		}
		imported++
	}

	return imported, nil
}

// ExportToMarkdown exports conversions as a markdown table.
func ExportToMarkdown(repo Repository) ([]byte, error) {
	conversions, err := repo.ListConversions(0)
	if err != nil {
		return nil, fmt.Errorf("list conversions: %w", err)
	}

	var sb strings.Builder

	now := time.Now().UTC()
	sb.WriteString(fmt.Sprintf("# ECI to ECEF Conversions - %s\n\n", now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	if len(conversions) == 0 {
		sb.WriteString("No conversions recorded.\n")
		return []byte(sb.String()), nil
	}

	sb.WriteString("| Epoch | Model | ECI (km) | ECEF (km) | GMST (rad) |\n")
	sb.WriteString("|-------|-------|----------|-----------|------------|\n")

	for _, c := range conversions {
		sb.WriteString(fmt.Sprintf("| %s | %s | (%.3f, %.3f, %.3f) | (%.3f, %.3f, %.3f) | %.9f |\n",
			c.Epoch, c.Model,
			c.ECI.X, c.ECI.Y, c.ECI.Z,
			c.Output.X, c.Output.Y, c.Output.Z,
			c.GMST))
	}

	return []byte(sb.String()), nil
}
