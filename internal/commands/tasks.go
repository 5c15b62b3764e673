package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ayaskarov/timekeep/internal/models"
)

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a new task",
	Args:  cobra.MinimumNArgs(1),
	Run: withEngine(func(cmd *cobra.Command, args []string) {
		name := strings.Join(args, " ")
		task, err := engine.CreateTask(ownerID, name)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("Created task \"%s\"\n", task.Name)
	}),
}

var rmCmd = &cobra.Command{
	Use:   "rm <number>",
	Short: "Delete a task and all its sessions",
	Args:  cobra.ExactArgs(1),
	Run: withEngine(func(cmd *cobra.Command, args []string) {
		task, err := taskByNumber(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if err := engine.DeleteTask(ownerID, task.ID); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("Deleted task \"%s\"\n", task.Name)
	}),
}

var listCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List tasks",
	Run: withEngine(func(cmd *cobra.Command, args []string) {
		tasks, err := engine.ListTasks(ownerID)
		if err != nil {
			fmt.Printf("Error fetching tasks: %v\n", err)
			return
		}

		if len(tasks) == 0 {
			fmt.Println("No tasks found. Use 'timekeep add \"task name\"' to create your first task.")
			return
		}

		fmt.Printf("%-4s %-40s %s\n", "#", "NAME", "CREATED")
		fmt.Println(strings.Repeat("-", 64))
		for i, task := range tasks {
			fmt.Printf("%-4d %-40s %s\n", i+1, truncate(task.Name, 40), task.CreatedAt.Format("2006-01-02"))
		}
	}),
}

// taskByNumber resolves a 1-based position in the task listing. The
// listing order is the contract: number N is always the Nth oldest
// task.
func taskByNumber(arg string) (*models.Task, error) {
	number, err := strconv.Atoi(arg)
	if err != nil || number < 1 {
		return nil, fmt.Errorf("invalid task number '%s'", arg)
	}
	tasks, err := engine.ListTasks(ownerID)
	if err != nil {
		return nil, err
	}
	if number > len(tasks) {
		return nil, fmt.Errorf("no task #%d, you have %d task(s)", number, len(tasks))
	}
	return &tasks[number-1], nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
