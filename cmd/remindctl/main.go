// Command remindctl is a small CLI over the remindkit client, talking to
// Apple Reminders through CalDAV.
//
// Usage:
//
//	remindctl [-config file] <command> [flags]
//
// Commands:
//
//	calendars             List reminder calendars
//	list                  List reminders with optional filters
//	search <text>         Search reminders by title or notes
//	next                  Show the next upcoming reminder
//	show <id>             Show a single reminder
//	add                   Create a reminder
//	complete <id>         Mark a reminder completed
//	reopen <id>           Reopen a completed reminder
//	delete <id>           Delete a reminder
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/namuan/remindkit"
	"github.com/namuan/remindkit/caldav"
	"github.com/namuan/remindkit/config"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")).
			Bold(true)

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")).
			Bold(true)

	highStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	mediumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("222"))
	lowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		fatal("invalid config: %v", err)
	}

	store := caldav.NewClient(cfg.CalDAV.URL, cfg.CalDAV.Username, cfg.CalDAV.Password,
		caldav.WithCalendar(cfg.CalDAV.Calendar),
		caldav.WithTimeout(cfg.HTTPTimeout()),
	)
	client := remindkit.New(store)

	ctx := context.Background()
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "calendars":
		runCalendars(ctx, client)
	case "list":
		runList(ctx, client, rest)
	case "search":
		if len(rest) == 0 {
			fatal("search needs a query")
		}
		runSearch(ctx, client, strings.Join(rest, " "))
	case "next":
		runNext(ctx, client)
	case "show":
		if len(rest) == 0 {
			fatal("show needs a reminder id")
		}
		runShow(ctx, client, rest[0])
	case "add":
		runAdd(ctx, client, rest)
	case "complete":
		if len(rest) == 0 {
			fatal("complete needs a reminder id")
		}
		runComplete(ctx, client, rest[0])
	case "reopen":
		if len(rest) == 0 {
			fatal("reopen needs a reminder id")
		}
		runReopen(ctx, client, rest[0])
	case "delete":
		if len(rest) == 0 {
			fatal("delete needs a reminder id")
		}
		runDelete(ctx, client, rest[0])
	default:
		usage()
		os.Exit(2)
	}
}

func runCalendars(ctx context.Context, client *remindkit.Client) {
	calendars, err := client.Calendars().List(ctx)
	if err != nil {
		fatal("list calendars: %v", err)
	}
	for _, cal := range calendars {
		marker := " "
		if cal.IsDefault {
			marker = "*"
		}
		fmt.Printf("%s %s  %s\n", marker, titleStyle.Render(cal.Name), dimStyle.Render(cal.ID))
	}
}

func runList(ctx context.Context, client *remindkit.Client, args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	completed := fs.String("completed", "", "filter by completion: true or false")
	priority := fs.String("priority", "", "filter by priority: low, medium, high")
	calendarID := fs.String("calendar", "", "filter by calendar id")
	dueWithin := fs.Duration("due-within", 0, "only reminders due within this duration from now")
	fs.Parse(args)

	var filter remindkit.Filter
	switch *completed {
	case "true":
		done := true
		filter.Completed = &done
	case "false":
		done := false
		filter.Completed = &done
	case "":
	default:
		fatal("-completed must be true or false")
	}
	if *priority != "" {
		p, err := remindkit.ParsePriority(*priority)
		if err != nil {
			fatal("%v", err)
		}
		filter.Priority = &p
	}
	filter.CalendarID = *calendarID
	if *dueWithin > 0 {
		now := time.Now()
		end := now.Add(*dueWithin)
		filter.DueAfter = &now
		filter.DueBefore = &end
	}

	reminders, err := client.GetReminders(ctx, filter)
	if err != nil {
		fatal("list reminders: %v", err)
	}
	printReminders(reminders)
}

func runSearch(ctx context.Context, client *remindkit.Client, query string) {
	reminders, err := client.SearchReminders(ctx, query)
	if err != nil {
		fatal("search reminders: %v", err)
	}
	printReminders(reminders)
}

func runNext(ctx context.Context, client *remindkit.Client) {
	next, err := client.NextReminder(ctx)
	if err != nil {
		fatal("next reminder: %v", err)
	}
	if next == nil {
		fmt.Println(dimStyle.Render("No upcoming reminders."))
		return
	}
	printReminder(*next)
}

func runShow(ctx context.Context, client *remindkit.Client, id string) {
	r, err := client.GetReminderByID(ctx, id)
	if err != nil {
		fatal("get reminder: %v", err)
	}
	printReminder(r)
}

func runAdd(ctx context.Context, client *remindkit.Client, args []string) {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	title := fs.String("title", "", "reminder title (required)")
	due := fs.String("due", "", "due date, RFC3339 (e.g. 2025-01-15T09:00:00Z)")
	notes := fs.String("notes", "", "notes")
	url := fs.String("url", "", "URL")
	priority := fs.String("priority", "", "priority: none, low, medium, high")
	flagged := fs.Bool("flag", false, "flag the reminder")
	calendarID := fs.String("calendar", "", "target calendar id (default calendar when empty)")
	fs.Parse(args)

	if *title == "" {
		fatal("add needs -title")
	}

	req := remindkit.CreateReminderRequest{
		Title:      *title,
		Notes:      *notes,
		URL:        *url,
		Flagged:    *flagged,
		CalendarID: *calendarID,
	}
	if *due != "" {
		t, err := time.Parse(time.RFC3339, *due)
		if err != nil {
			fatal("invalid -due: %v", err)
		}
		req.DueDate = &t
	}
	p, err := remindkit.ParsePriority(*priority)
	if err != nil {
		fatal("%v", err)
	}
	req.Priority = p

	created, err := client.CreateReminder(ctx, req)
	if err != nil {
		fatal("create reminder: %v", err)
	}
	fmt.Printf("Created %s\n", dimStyle.Render(created.ID))
	printReminder(created)
}

func runComplete(ctx context.Context, client *remindkit.Client, id string) {
	r, err := client.CompleteReminder(ctx, id)
	if err != nil {
		fatal("complete reminder: %v", err)
	}
	fmt.Printf("%s %s\n", doneStyle.Render("✓"), r.Title)
}

func runReopen(ctx context.Context, client *remindkit.Client, id string) {
	r, err := client.ReopenReminder(ctx, id)
	if err != nil {
		fatal("reopen reminder: %v", err)
	}
	fmt.Printf("%s %s\n", "○", r.Title)
}

func runDelete(ctx context.Context, client *remindkit.Client, id string) {
	if err := client.DeleteReminder(ctx, id); err != nil {
		fatal("delete reminder: %v", err)
	}
	fmt.Printf("Deleted %s\n", dimStyle.Render(id))
}

func printReminders(reminders []remindkit.Reminder) {
	if len(reminders) == 0 {
		fmt.Println(dimStyle.Render("No reminders."))
		return
	}
	for _, r := range reminders {
		printReminder(r)
	}
}

func printReminder(r remindkit.Reminder) {
	status := "○"
	title := titleStyle.Render(r.Title)
	if r.Completed {
		status = doneStyle.Render("✓")
		title = dimStyle.Render(r.Title)
	}

	line := fmt.Sprintf("%s %s", status, title)
	if r.Priority != remindkit.PriorityNone {
		line += " " + priorityBadge(r.Priority)
	}
	if r.Flagged {
		line += " ⚑"
	}
	if r.DueDate != nil {
		line += " " + dimStyle.Render(r.DueDate.Local().Format("02 Jan 15:04"))
	}
	fmt.Println(line)

	if r.Notes != "" {
		fmt.Println("  " + dimStyle.Render(r.Notes))
	}
	fmt.Println("  " + dimStyle.Render(r.ID))
}

func priorityBadge(p remindkit.Priority) string {
	switch p.Level() {
	case remindkit.PriorityHigh:
		return highStyle.Render("[high]")
	case remindkit.PriorityMedium:
		return mediumStyle.Render("[medium]")
	case remindkit.PriorityLow:
		return lowStyle.Render("[low]")
	default:
		return ""
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: remindctl [-config file] <command> [flags]

Commands:
  calendars           List reminder calendars
  list                List reminders (-completed, -priority, -calendar, -due-within)
  search <text>       Search reminders by title or notes
  next                Show the next upcoming reminder
  show <id>           Show a single reminder
  add                 Create a reminder (-title, -due, -notes, -url, -priority, -flag, -calendar)
  complete <id>       Mark a reminder completed
  reopen <id>         Reopen a completed reminder
  delete <id>         Delete a reminder`)
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf(format, args...)))
	os.Exit(1)
}
