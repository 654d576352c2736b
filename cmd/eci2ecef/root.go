// ABOUTME: Root Cobra command, global flags and the positional conversion
// ABOUTME: Loads config, builds the logger and prints the ECEF triple

package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harper/eci2ecef/internal/config"
	"github.com/harper/eci2ecef/internal/frames"
	"github.com/harper/eci2ecef/internal/logging"
	"github.com/harper/eci2ecef/internal/models"
	"github.com/harper/eci2ecef/internal/storage"
	"github.com/harper/eci2ecef/internal/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// usageLine is printed when the positional argument count is wrong.
const usageLine = "Usage: eci2ecef year month day hour minute second eci_x_km eci_y_km eci_z_km"

var (
	cfg    *config.Config
	logger = zap.NewNop()
	db     storage.Repository
)

var rootCmd = &cobra.Command{
	Use:   "eci2ecef year month day hour minute second eci_x_km eci_y_km eci_z_km",
	Short: "Convert an ECI position to ECEF at a UTC epoch",
	Long: `Convert an Earth-Centered Inertial position vector (km) to the
Earth-Centered Earth-Fixed frame by rotating about Z by Greenwich Mean
Sidereal Time. Prints x, y and z on three lines.

Examples:
  eci2ecef 2023 3 15 12 0 0 7000 0 0
  eci2ecef --model iau82 --json 2023 3 15 12 0 0 7000 0 0
  eci2ecef --record --geodetic 2000 1 1 12 0 0 6524.834 6862.875 6448.296
  eci2ecef history`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("model") {
			loaded.Model, _ = cmd.Flags().GetString("model")
			if _, err := loaded.GetModel(); err != nil {
				return err
			}
		}
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			loaded.Debug = true
		}
		cfg = loaded

		logger, err = logging.New(cfg.Debug)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		logger.Debug("config loaded",
			zap.String("model", cfg.Model),
			zap.String("data_dir", cfg.GetDataDir()),
			zap.Bool("record", cfg.Record))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		_ = logger.Sync()
		if db != nil {
			err := db.Close()
			db = nil
			return err
		}
		return nil
	},
	RunE: runConvert,
}

// printUsage writes the positional usage line and the available subcommands.
// A single argument close to a subcommand name gets a suggestion.
func printUsage(cmd *cobra.Command, args []string) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, usageLine)
	if len(args) == 1 {
		if s := cmd.SuggestionsFor(args[0]); len(s) > 0 {
			fmt.Fprintf(out, "Unknown command %q. Did you mean %q?\n", args[0], s[0])
		}
	}

	var names []string
	for _, c := range cmd.Root().Commands() {
		if c.IsAvailableCommand() {
			names = append(names, c.Name())
		}
	}
	if len(names) > 0 {
		fmt.Fprintf(out, "Commands: %s\n", strings.Join(names, ", "))
	}
	fmt.Fprintln(out, "Run 'eci2ecef --help' for flags and subcommands.")
}

func runConvert(cmd *cobra.Command, args []string) error {
	if len(args) != len(models.ArgNames) {
		printUsage(cmd, args)
		return nil
	}

	epoch, eci, err := models.ParseArgs(args)
	if err != nil {
		return err
	}
	model, err := cfg.GetModel()
	if err != nil {
		return err
	}

	res, err := frames.Convert(model, epoch, eci)
	if err != nil {
		return err
	}
	logger.Debug("converted",
		zap.String("model", string(res.Model)),
		zap.Float64("julian_date", res.Angle.JulianDate),
		zap.Float64("centuries", res.Angle.Centuries),
		zap.Float64("gmst_rad", res.Angle.Radians))

	if showMatrix, _ := cmd.Flags().GetBool("matrix"); showMatrix {
		fmt.Fprintln(cmd.ErrOrStderr(), ui.FormatMatrix(frames.RotationMatrix(res.Angle.Radians)))
	}

	var geo *frames.Geodetic
	if withGeodetic, _ := cmd.Flags().GetBool("geodetic"); withGeodetic {
		g := frames.ToGeodetic(res.ECEF)
		geo = &g
	}

	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		if err := ui.WriteJSON(out, res, geo); err != nil {
			return err
		}
	} else {
		if err := ui.WriteLines(out, res); err != nil {
			return err
		}
		if geo != nil {
			if err := ui.WriteGeodetic(out, *geo); err != nil {
				return err
			}
		}
	}

	record, _ := cmd.Flags().GetBool("record")
	if record || cfg.Record {
		return recordConversion(cmd, res)
	}
	return nil
}

func recordConversion(cmd *cobra.Command, res frames.Result) error {
	repo, err := openDB()
	if err != nil {
		return err
	}

	c := models.NewConversion(string(res.Model), res.Epoch, res.ECI, res.Printed(),
		res.Angle.Radians, res.Angle.JulianDate)
	if err := repo.CreateConversion(c); err != nil {
		return fmt.Errorf("failed to record conversion: %w", err)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "%s conversion %s\n", color.GreenString("Recorded"), c.ID.String()[:6])
	logger.Debug("recorded", zap.String("id", c.ID.String()))
	return nil
}

// openDB opens the history database once per invocation.
func openDB() (storage.Repository, error) {
	if db != nil {
		return db, nil
	}
	repo, err := cfg.OpenStorage()
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db = repo
	return db, nil
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default $XDG_CONFIG_HOME/eci2ecef/config.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "debug logging on stderr")
	rootCmd.PersistentFlags().StringP("model", "m", string(frames.ModelLegacy), "GMST model: legacy or iau82")

	rootCmd.Flags().Bool("json", false, "print the result as JSON")
	rootCmd.Flags().BoolP("geodetic", "g", false, "also print latitude, longitude (deg) and altitude (km)")
	rootCmd.Flags().Bool("matrix", false, "print the rotation matrix to stderr")
	rootCmd.Flags().BoolP("record", "r", false, "store the conversion in history")

	// Stop at the first positional so negative components are not read as flags.
	rootCmd.Flags().SetInterspersed(false)
}
