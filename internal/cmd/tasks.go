package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/renato0307/obreiro/internal/backlog"
	"github.com/renato0307/obreiro/internal/domain"
	"github.com/renato0307/obreiro/internal/theme"
)

// TasksCmd manages the backlog
type TasksCmd struct {
	Add      TasksAddCmd      `cmd:"add" help:"Append a task to the backlog"`
	Complete TasksCompleteCmd `cmd:"complete" help:"Mark the first pending task matching a description as done"`
	List     TasksListCmd     `cmd:"list" help:"List tasks grouped by priority" default:"1"`
	Next     TasksNextCmd     `cmd:"next" help:"Show the task the agent would pick next"`
}

// TasksListCmd lists every task
type TasksListCmd struct {
	All    bool   `help:"Include completed tasks"`
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the list command
func (t *TasksListCmd) Run(cli *CLI) error {
	tasks, stats, err := cli.Container.BacklogService.Summary()
	if err != nil {
		return err
	}

	if !t.All {
		pending := tasks[:0]
		for _, task := range tasks {
			if !task.Completed {
				pending = append(pending, task)
			}
		}
		tasks = pending
	}

	if t.Format == formatJSON {
		return printJSON(map[string]any{"stats": stats, "tasks": tasks})
	}

	if len(tasks) == 0 {
		fmt.Println(theme.MutedStyle.Render("No tasks"))
	} else {
		tw := newTable(table.Row{"ID", "", "Priority", "Description", "Tags"})
		for _, p := range []domain.Priority{domain.PriorityHigh, domain.PriorityMedium, domain.PriorityLow, domain.PriorityNone} {
			group := tasksWithPriority(tasks, p)
			if len(group) == 0 {
				continue
			}
			if tw.Length() > 0 {
				tw.AppendSeparator()
			}
			for _, task := range group {
				tw.AppendRow(table.Row{
					task.ID,
					theme.TaskIcon(task.Completed),
					theme.PriorityStyle(task.Priority).Render(task.Priority.String()),
					task.Description,
					formatTags(task.Tags),
				})
			}
		}
		tw.Render()
	}

	fmt.Printf("\n%d/%d completed (%.0f%%), %d pending\n", stats.Completed, stats.Total, stats.CompletionRate, stats.Pending)
	return nil
}

// TasksNextCmd shows the next task
type TasksNextCmd struct {
	ByPriority bool   `help:"Pick the highest priority task instead of the first pending one" name:"by-priority" default:"true" negatable:""`
	Format     string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the next command
func (t *TasksNextCmd) Run(cli *CLI) error {
	task, err := cli.Container.BacklogService.NextTask(t.ByPriority)
	if errors.Is(err, domain.ErrNoPendingTasks) {
		if t.Format == formatJSON {
			return printJSON(nil)
		}
		fmt.Println(theme.MutedStyle.Render("No pending tasks"))
		return nil
	}
	if err != nil {
		return err
	}

	if t.Format == formatJSON {
		return printJSON(task)
	}
	printTask(task)
	return nil
}

// TasksCompleteCmd completes a task by description
type TasksCompleteCmd struct {
	Description string `arg:"" help:"Text contained in the task description (case-insensitive)"`
}

// Run executes the complete command
func (t *TasksCompleteCmd) Run(cli *CLI) error {
	task, err := cli.Container.BacklogService.CompleteByDescription(t.Description)
	if err != nil {
		return err
	}
	fmt.Printf("%s Completed %s\n", theme.TaskIcon(true), task.Description)
	return nil
}

// TasksAddCmd appends a task
type TasksAddCmd struct {
	Description string   `arg:"" help:"Task description"`
	Priority    string   `help:"Task priority" enum:"none,low,medium,high" default:"none" short:"p"`
	Tags        []string `help:"Tags to attach (repeatable)" name:"tag" short:"t"`
}

// Run executes the add command
func (t *TasksAddCmd) Run(cli *CLI) error {
	priority, err := domain.ParsePriority(t.Priority)
	if err != nil {
		return err
	}

	task, err := cli.Container.BacklogService.Add(t.Description, priority, t.Tags)
	if err != nil {
		return err
	}
	fmt.Printf("Added %s\n", backlog.RenderTask(*task))
	return nil
}

func tasksWithPriority(tasks []domain.Task, p domain.Priority) []domain.Task {
	var out []domain.Task
	for _, task := range tasks {
		if task.Priority == p {
			out = append(out, task)
		}
	}
	return out
}

func formatTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	return "#" + strings.Join(tags, " #")
}

func printTask(task *domain.Task) {
	fmt.Printf("%s %s\n", theme.LabelStyle.Render("Task:"), theme.TitleStyle.Render(task.Description))
	fmt.Printf("%s %s\n", theme.LabelStyle.Render("Priority:"), theme.PriorityStyle(task.Priority).Render(task.Priority.String()))
	if len(task.Tags) > 0 {
		fmt.Printf("%s %s\n", theme.LabelStyle.Render("Tags:"), formatTags(task.Tags))
	}
	if task.IsPersisted() {
		fmt.Printf("%s %d\n", theme.LabelStyle.Render("Line:"), task.LineNumber)
	}
}
