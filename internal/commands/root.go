package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/ayaskarov/timekeep/internal/config"
	"github.com/ayaskarov/timekeep/internal/db"
	"github.com/ayaskarov/timekeep/internal/stats"
	"github.com/ayaskarov/timekeep/internal/tracker"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	cfg      *config.Config
	database *gorm.DB
	engine   *tracker.Tracker
	reports  *stats.Service
	ownerID  int64
)

var rootCmd = &cobra.Command{
	Use:   "timekeep",
	Short: "A per-user task and time tracker",
	Long: `timekeep tracks work sessions against named tasks and reports where
the time went: daily totals, per-task shares, and an exact
hour-of-day activity histogram.`,
}

// withEngine wraps a command function to set up config, database and
// services first.
func withEngine(fn func(*cobra.Command, []string)) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		if engine == nil {
			var err error
			cfg, err = config.LoadConfig()
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}
			database, err = db.Open(cfg.Database)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}
			engine = tracker.New(database)
			reports = stats.New(database)
		}
		fn(cmd, args)
	}
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	defer db.Close(database)
	return rootCmd.Execute()
}

func defaultOwner() int64 {
	if value := os.Getenv("TIMEKEEP_OWNER"); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return 1
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("timekeep %s (commit %s, built %s)\n", version, commit, date)
	},
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&ownerID, "owner", defaultOwner(), "owner identity tasks and sessions belong to")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(versionCmd)
}
