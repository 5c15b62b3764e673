package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/ayaskarov/timekeep/internal/stats"
	"github.com/ayaskarov/timekeep/internal/timeutil"
)

var (
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	barStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

const barWidth = 30

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show activity statistics",
	Long: `Show activity statistics: daily totals over the trailing window,
time per task with percentage shares, and the hour-of-day activity
histogram.`,
	Run: withEngine(func(cmd *cobra.Command, args []string) {
		days, _ := cmd.Flags().GetInt("days")
		if days <= 0 {
			days = cfg.Stats.WindowDays
		}
		allTime, _ := cmd.Flags().GetBool("all-time")
		taskArg, _ := cmd.Flags().GetString("task")

		var taskID *uint
		if taskArg != "" {
			task, err := taskByNumber(taskArg)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			taskID = &task.ID
			fmt.Println(sectionStyle.Render(fmt.Sprintf("Task: %s", task.Name)))
		}

		if err := printDaily(taskID, days); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if err := printTaskTotals(days, allTime); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if err := printHourly(); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
	}),
}

func printDaily(taskID *uint, days int) error {
	totals, err := reports.DailyTotals(ownerID, taskID, days)
	if err != nil {
		return err
	}
	total, average, err := reports.TotalAndAverage(ownerID, taskID, days)
	if err != nil {
		return err
	}

	fmt.Println(sectionStyle.Render(fmt.Sprintf("Last %d days", days)))
	var max int64
	for _, day := range totals {
		if day.Seconds > max {
			max = day.Seconds
		}
	}
	for _, day := range totals {
		fmt.Printf("%s %s %s\n",
			day.Date.Format("Mon 02.01"),
			bar(day.Seconds, max),
			timeutil.FormatDuration(day.Seconds))
	}
	fmt.Printf("Total %s, average %s/day\n\n",
		timeutil.FormatDuration(total), timeutil.FormatDuration(average))
	return nil
}

func printTaskTotals(days int, allTime bool) error {
	window := &days
	title := fmt.Sprintf("Time per task, last %d days", days)
	if allTime {
		window = nil
		title = "Time per task, all time"
	}

	totals, err := reports.TaskTotals(ownerID, window)
	if err != nil {
		return err
	}
	fmt.Println(sectionStyle.Render(title))
	if len(totals) == 0 {
		fmt.Println(dimStyle.Render("no completed sessions yet"))
		fmt.Println()
		return nil
	}

	totals = stats.CollapseOther(totals, stats.DefaultOtherThreshold)
	for _, entry := range totals {
		fmt.Printf("%-30s %9s %5.1f%%\n",
			truncate(entry.Name, 30),
			timeutil.FormatDuration(entry.Seconds),
			entry.Percent)
	}
	fmt.Println()
	return nil
}

func printHourly() error {
	distribution, err := reports.HourlyDistribution(ownerID, cfg.Stats.UTCOffset)
	if err != nil {
		return err
	}

	fmt.Println(sectionStyle.Render(fmt.Sprintf("Activity by hour (UTC%+d)", cfg.Stats.UTCOffset)))
	var max int64
	for _, h := range distribution {
		if h.Seconds > max {
			max = h.Seconds
		}
	}
	if max == 0 {
		fmt.Println(dimStyle.Render("no completed sessions yet"))
		return nil
	}
	for _, h := range distribution {
		fmt.Printf("%02d %s %4.1f%%\n", h.Hour, bar(h.Seconds, max), h.Percent)
	}
	return nil
}

func bar(value, max int64) string {
	if max == 0 {
		return strings.Repeat(" ", barWidth)
	}
	n := int(value * barWidth / max)
	return barStyle.Render(strings.Repeat("█", n)) + strings.Repeat(" ", barWidth-n)
}

func init() {
	reportCmd.Flags().Int("days", 0, "trailing window in days (default from config)")
	reportCmd.Flags().Bool("all-time", false, "per-task totals over all time instead of the window")
	reportCmd.Flags().String("task", "", "restrict daily totals to one task number")
}
