// ABOUTME: Export command for recorded conversions
// ABOUTME: Writes history as YAML, markdown, a GeoJSON ground track or an xlsx workbook

package main

import (
	"fmt"
	"os"

	"github.com/harper/eci2ecef/internal/geojson"
	"github.com/harper/eci2ecef/internal/storage"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:     "export",
	Aliases: []string{"e"},
	Short:   "Export recorded conversions",
	Long: `Export recorded conversions as YAML, Markdown, GeoJSON or XLSX.

The YAML form can be restored with 'eci2ecef import'. GeoJSON places each
ECEF position on the WGS-84 ellipsoid as [lng, lat, alt_m].

Examples:
  eci2ecef export
  eci2ecef export --format markdown
  eci2ecef export --format geojson --geometry line --output track.geojson
  eci2ecef export --format xlsx --output history.xlsx
  eci2ecef export --output history.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")

		geometry, _ := cmd.Flags().GetString("geometry")
		if geometry != "points" && geometry != "line" {
			return fmt.Errorf("unsupported geometry: %s (use 'points' or 'line')", geometry)
		}

		if format == "xlsx" && output == "" {
			return fmt.Errorf("xlsx export requires --output")
		}

		repo, err := openDB()
		if err != nil {
			return err
		}

		var data []byte
		switch format {
		case "yaml":
			data, err = storage.ExportToYAML(repo)
		case "markdown":
			data, err = storage.ExportToMarkdown(repo)
		case "geojson":
			data, err = exportGeoJSON(repo, geometry)
		case "xlsx":
			data, err = storage.ExportToXLSX(repo)
		default:
			return fmt.Errorf("unsupported format: %s (use 'yaml', 'markdown', 'geojson' or 'xlsx')", format)
		}
		if err != nil {
			return fmt.Errorf("failed to generate %s: %w", format, err)
		}

		if output != "" {
			if err := os.WriteFile(output, data, 0644); err != nil { //nolint:gosec // 0644 is intentional for data export files
				return fmt.Errorf("failed to write file: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s to %s\n", format, output)
			return nil
		}

		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func exportGeoJSON(repo storage.Repository, geometry string) ([]byte, error) {
	conversions, err := repo.ListConversions(0)
	if err != nil {
		return nil, err
	}

	var fc *geojson.FeatureCollection
	if geometry == "line" {
		fc = geojson.ToLineFeatureCollection(conversions)
	} else {
		fc = geojson.ToPointsFeatureCollection(conversions)
	}

	data, err := fc.ToJSONIndent()
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func init() {
	exportCmd.Flags().StringP("format", "f", "yaml", "output format: yaml, markdown, geojson or xlsx")
	exportCmd.Flags().String("geometry", "points", "geojson geometry: points or line")
	exportCmd.Flags().StringP("output", "o", "", "write to file instead of stdout")

	rootCmd.AddCommand(exportCmd)
}
