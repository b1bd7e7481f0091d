// Package backlog reads and writes the markdown checklist that drives the agent.
// Only task lines are ever rewritten; everything else is kept byte for byte.
package backlog

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/renato0307/obreiro/internal/domain"
)

var (
	taskLine     = regexp.MustCompile(`^(\s*)- \[([ xX])\] (.+)$`)
	checkbox     = regexp.MustCompile(`^(\s*- \[)[ xX](\] )`)
	priorityMark = regexp.MustCompile(`\[(!{1,3})\]`)
	tagPattern   = regexp.MustCompile(`#(\w+)`)
	spaceRuns    = regexp.MustCompile(`\s{2,}`)
)

// Document is a parsed backlog file. lineOf holds the 0-based line index of each task,
// including tasks added since parsing.
type Document struct {
	appended bool
	lineOf   []int
	lines    []string
	tasks    []domain.Task
}

// Parse splits content into lines and extracts every checklist task
func Parse(content string) *Document {
	d := &Document{lines: strings.Split(content, "\n")}
	seq := 1
	for i, line := range d.lines {
		task, ok := ParseLine(line)
		if !ok {
			continue
		}
		task.ID = fmt.Sprintf("task-%d", seq)
		task.LineNumber = i + 1
		seq++
		d.tasks = append(d.tasks, task)
		d.lineOf = append(d.lineOf, i)
	}
	return d
}

// ParseLine parses a single checklist line. ID and LineNumber are left to the caller.
func ParseLine(line string) (domain.Task, bool) {
	m := taskLine.FindStringSubmatch(line)
	if m == nil {
		return domain.Task{}, false
	}

	task := domain.Task{
		Completed: strings.EqualFold(m[2], "x"),
		RawLine:   line,
		Tags:      []string{},
	}

	desc := m[3]
	if pm := priorityMark.FindStringSubmatchIndex(desc); pm != nil {
		task.Priority = domain.Priority(pm[3] - pm[2])
		desc = desc[:pm[0]] + desc[pm[1]:]
	}

	for _, tm := range tagPattern.FindAllStringSubmatch(desc, -1) {
		if !containsTag(task.Tags, tm[1]) {
			task.Tags = append(task.Tags, tm[1])
		}
	}
	desc = tagPattern.ReplaceAllString(desc, "")

	task.Description = strings.TrimSpace(spaceRuns.ReplaceAllString(desc, " "))
	return task, true
}

// RenderTask formats a task as a fresh checklist line
func RenderTask(task domain.Task) string {
	mark := " "
	if task.Completed {
		mark = "x"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "- [%s] %s", mark, task.Description)
	if m := task.Priority.Marker(); m != "" {
		b.WriteString(" " + m)
	}
	for _, tag := range task.Tags {
		b.WriteString(" #" + tag)
	}
	return b.String()
}

// Render returns the backlog content, identical to the input for untouched tasks
func (d *Document) Render() string {
	return strings.Join(d.lines, "\n")
}

// Tasks returns a copy of every task in file order
func (d *Document) Tasks() []domain.Task {
	out := make([]domain.Task, len(d.tasks))
	copy(out, d.tasks)
	return out
}

// Find returns the task with the given ID
func (d *Document) Find(id string) (domain.Task, error) {
	for _, t := range d.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return domain.Task{}, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, id)
}

// Next returns the first incomplete task in file order
func (d *Document) Next() (domain.Task, bool) {
	for _, t := range d.tasks {
		if !t.Completed {
			return t, true
		}
	}
	return domain.Task{}, false
}

// HighestPriority returns the first incomplete high, then medium, then low task,
// falling back to the first incomplete task
func (d *Document) HighestPriority() (domain.Task, bool) {
	for _, p := range []domain.Priority{domain.PriorityHigh, domain.PriorityMedium, domain.PriorityLow} {
		if tasks := d.ByPriority(p); len(tasks) > 0 {
			return tasks[0], true
		}
	}
	return d.Next()
}

// ByPriority returns incomplete tasks with the given priority
func (d *Document) ByPriority(p domain.Priority) []domain.Task {
	var out []domain.Task
	for _, t := range d.tasks {
		if !t.Completed && t.Priority == p {
			out = append(out, t)
		}
	}
	return out
}

// ByTag returns incomplete tasks carrying the tag
func (d *Document) ByTag(tag string) []domain.Task {
	var out []domain.Task
	for _, t := range d.tasks {
		if !t.Completed && t.HasTag(tag) {
			out = append(out, t)
		}
	}
	return out
}

// Pending returns incomplete tasks in file order
func (d *Document) Pending() []domain.Task {
	var out []domain.Task
	for _, t := range d.tasks {
		if !t.Completed {
			out = append(out, t)
		}
	}
	return out
}

// Complete marks a task done and rewrites only its checkbox.
// Completing an already completed task changes nothing.
func (d *Document) Complete(id string) (domain.Task, error) {
	for i := range d.tasks {
		if d.tasks[i].ID == id {
			return d.complete(i), nil
		}
	}
	return domain.Task{}, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, id)
}

// CompleteByDescription completes the first incomplete task whose description
// contains text, ignoring case
func (d *Document) CompleteByDescription(text string) (domain.Task, error) {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return domain.Task{}, fmt.Errorf("%w: empty description", domain.ErrTaskNotFound)
	}
	for i := range d.tasks {
		if !d.tasks[i].Completed && strings.Contains(strings.ToLower(d.tasks[i].Description), needle) {
			return d.complete(i), nil
		}
	}
	return domain.Task{}, fmt.Errorf("%w: no pending task matches %q", domain.ErrTaskNotFound, text)
}

func (d *Document) complete(i int) domain.Task {
	task := &d.tasks[i]
	if task.Completed {
		return *task
	}
	task.Completed = true

	idx := d.lineOf[i]
	if checkbox.MatchString(d.lines[idx]) {
		d.lines[idx] = checkbox.ReplaceAllString(d.lines[idx], "${1}x${2}")
	} else {
		d.lines[idx] = RenderTask(*task)
	}
	if task.IsPersisted() {
		task.RawLine = d.lines[idx]
	}
	return *task
}

// Add appends a new pending task at the end of the file, separated from
// existing content by one blank line. The task has no LineNumber or RawLine until
// the backlog is saved and parsed again.
func (d *Document) Add(description string, priority domain.Priority, tags []string) (domain.Task, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return domain.Task{}, fmt.Errorf("task description cannot be empty")
	}

	task := domain.Task{
		Description: description,
		ID:          "task-" + uuid.New().String()[:8],
		Priority:    priority,
		Tags:        normalizeTags(tags),
	}

	body := d.lines
	if n := len(body); n > 0 && body[n-1] == "" {
		body = body[:n-1]
	}
	if len(body) > 0 && !d.appended && strings.TrimSpace(body[len(body)-1]) != "" {
		body = append(body, "")
	}
	body = append(body, RenderTask(task))
	d.lineOf = append(d.lineOf, len(body)-1)
	d.lines = append(body, "")
	d.appended = true

	d.tasks = append(d.tasks, task)
	return task, nil
}

// Stats summarizes completion progress
func (d *Document) Stats() domain.TaskStats {
	stats := domain.TaskStats{Total: len(d.tasks)}
	for _, t := range d.tasks {
		if t.Completed {
			stats.Completed++
		}
	}
	stats.Pending = stats.Total - stats.Completed
	if stats.Total > 0 {
		stats.CompletionRate = float64(stats.Completed) / float64(stats.Total) * 100
	}
	return stats
}

func normalizeTags(tags []string) []string {
	out := []string{}
	for _, tag := range tags {
		tag = strings.TrimPrefix(strings.TrimSpace(tag), "#")
		if tag == "" || containsTag(out, tag) {
			continue
		}
		out = append(out, tag)
	}
	return out
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
