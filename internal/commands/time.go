package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ayaskarov/timekeep/internal/timeutil"
	"github.com/ayaskarov/timekeep/internal/tui"
)

var startCmd = &cobra.Command{
	Use:   "start <number>",
	Short: "Start tracking time on a task",
	Long: `Start tracking time on a task. Opens the interactive timer by
default; use --no-ui for a plain start.

Examples:
  timekeep start 2         # start the timer UI on task #2
  timekeep start 2 --no-ui # start without UI`,
	Args: cobra.ExactArgs(1),
	Run: withEngine(func(cmd *cobra.Command, args []string) {
		task, err := taskByNumber(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		session, err := engine.StartSession(ownerID, task.ID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		noUI, _ := cmd.Flags().GetBool("no-ui")
		if noUI {
			fmt.Printf("Started tracking \"%s\"\n", session.Task.Name)
			fmt.Printf("Started at: %s\n", session.StartTime.Local().Format("15:04:05"))
			return
		}

		stopped, err := tui.RunTimer(engine, ownerID, session)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if stopped != nil {
			fmt.Printf("Stopped tracking \"%s\"\n", stopped.TaskName)
			fmt.Printf("Session duration: %s\n", stopped.Duration)
		}
	}),
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop tracking time",
	Run: withEngine(func(cmd *cobra.Command, args []string) {
		stopped, err := engine.StopSession(ownerID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("Stopped tracking \"%s\"\n", stopped.TaskName)
		fmt.Printf("Session duration: %s\n", stopped.Duration)
	}),
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current time tracking status",
	Run: withEngine(func(cmd *cobra.Command, args []string) {
		session, err := engine.ActiveSession(ownerID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if session == nil {
			fmt.Println("No active time tracking session")
			return
		}

		elapsed := timeutil.DurationSeconds(session.StartTime, time.Now())
		fmt.Printf("Currently tracking \"%s\"\n", session.Task.Name)
		fmt.Printf("Started at: %s\n", session.StartTime.Local().Format("15:04:05"))
		fmt.Printf("Elapsed time: %s\n", timeutil.FormatDuration(elapsed))
	}),
}

func init() {
	startCmd.Flags().Bool("no-ui", false, "Start timer without interactive UI")
}
