package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	availability "mesaYaHours/internal/modules/availability/domain"
	"mesaYaHours/internal/modules/hours/domain"
	"mesaYaHours/internal/modules/hours/infrastructure"
)

var (
	Version   = "dev"
	CommitSHA = "none"
	BuildDate = "unknown"
)

// hoursctl trabaja sobre archivos locales: no toca Kafka ni el servidor HTTP.
// It exists so operators can replay a provider payload and see the exact week
// the reconciler would store, without standing up the full service.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "hoursctl",
		Short: "Offline tools for venue hours payloads, schedules and seed files",
	}

	root.AddCommand(newVersionCmd())
	root.AddCommand(newReconcileCmd())
	root.AddCommand(newStatusCmd())
	root.AddCommand(newSeedCmd())

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version info",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "hoursctl %s (commit=%s, built=%s)\n", Version, CommitSHA, BuildDate)
		},
	}
}

func newReconcileCmd() *cobra.Command {
	var (
		feedPath string
		basePath string
		asJSON   bool
	)

	c := &cobra.Command{
		Use:   "reconcile",
		Short: "Run a provider hours payload through the reconciler and print the resulting week",
		RunE: func(cmd *cobra.Command, args []string) error {
			feed, err := loadFeedFile(feedPath)
			if err != nil {
				return err
			}

			base := domain.NewClosedWeek()
			if basePath != "" {
				base, err = loadWeekFile(basePath)
				if err != nil {
					return err
				}
			}

			week := domain.ReconcileFeed(base, feed)
			if asJSON {
				return printJSON(cmd, week)
			}
			if feed.Periods == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "payload has no period list; stored rows stay as they are")
			}
			printWeek(cmd, week)
			return nil
		},
	}

	c.Flags().StringVar(&feedPath, "feed", "", "provider hours payload (JSON file)")
	c.Flags().StringVar(&basePath, "base", "", "stored week to merge into (JSON file); manual rows survive")
	c.Flags().BoolVar(&asJSON, "json", false, "emit the week as JSON instead of a table")
	_ = c.MarkFlagRequired("feed")
	return c
}

func newStatusCmd() *cobra.Command {
	var (
		feedPath string
		weekPath string
		atStr    string
		capacity int
		override bool
	)

	c := &cobra.Command{
		Use:   "status",
		Short: "Evaluate open/closed and the next opening at an instant",
		RunE: func(cmd *cobra.Command, args []string) error {
			if feedPath == "" && weekPath == "" {
				return fmt.Errorf("need --feed, --week, or both")
			}

			at := time.Now().UTC()
			if atStr != "" {
				parsed, err := time.Parse(time.RFC3339, atStr)
				if err != nil {
					return fmt.Errorf("invalid --at (want RFC3339): %w", err)
				}
				at = parsed
			}

			var feed *domain.Feed
			if feedPath != "" {
				loaded, err := loadFeedFile(feedPath)
				if err != nil {
					return err
				}
				feed = &loaded
			}

			var week *domain.WeekSchedule
			if weekPath != "" {
				loaded, err := loadWeekFile(weekPath)
				if err != nil {
					return err
				}
				week = &loaded
			}

			out := cmd.OutOrStdout()
			opts := domain.StatusOptions{FeedOverride: override}
			status := domain.EvaluateOpen(week, feed, at, opts)
			switch {
			case !status.Determinable:
				fmt.Fprintf(out, "%s: unknown (no usable hours)\n", at.Format(time.RFC3339))
			case status.Open:
				fmt.Fprintf(out, "%s: open\n", at.Format(time.RFC3339))
			default:
				fmt.Fprintf(out, "%s: closed\n", at.Format(time.RFC3339))
			}

			if !status.Open {
				if next, ok := domain.NextOpening(week, feed, at); ok {
					fmt.Fprintf(out, "next opening: %s (%s %s)\n",
						next.Format(time.RFC3339), domain.DayName(domain.DayIndex(next)), domain.FormatTime12(next))
				} else {
					fmt.Fprintln(out, "no upcoming opening found")
				}
			}

			if capacity > 0 {
				result := availability.Evaluate(availability.Inputs{
					Capacity: capacity,
					Week:     week,
					Feed:     feed,
					Status:   opts,
				}, at)
				fmt.Fprintf(out, "guest label: %q\n", result.Label)
			}
			return nil
		},
	}

	c.Flags().StringVar(&feedPath, "feed", "", "provider hours payload (JSON file)")
	c.Flags().StringVar(&weekPath, "week", "", "stored week (JSON file)")
	c.Flags().StringVar(&atStr, "at", "", "instant to evaluate, RFC3339 (default: now)")
	c.Flags().IntVar(&capacity, "capacity", 0, "venue capacity; when set, also print the guest-facing label")
	c.Flags().BoolVar(&override, "feed-override", true, "let a feed that reports service overrule stored closed rows")
	return c
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file>",
		Short: "Validate a venue seed file by applying it to a scratch repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := infrastructure.LoadVenueSeed(args[0])
			if err != nil {
				return err
			}
			repo := infrastructure.NewMemoryScheduleRepository()
			capacities, err := seed.Apply(context.Background(), repo)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, venue := range seed.Venues {
				fmt.Fprintf(out, "venue %s: %d hours rows, capacity %d\n", venue.ID, len(venue.Hours), venue.Capacity)
			}
			fmt.Fprintf(out, "seed ok: %d venues, %d capacity fallbacks\n", len(seed.Venues), len(capacities))
			return nil
		},
	}
}

// loadFeedFile reads any JSON document and runs it through the same
// normalization the Kafka path uses, so the CLI accepts exactly what the
// stream would.
func loadFeedFile(path string) (domain.Feed, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.Feed{}, err
	}
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return domain.Feed{}, fmt.Errorf("parse %s: %w", path, err)
	}
	feed, ok := domain.NormalizeFeed(payload)
	if !ok {
		return domain.Feed{}, fmt.Errorf("%s does not look like an hours payload", path)
	}
	return feed, nil
}

// loadWeekFile accepts either the API response shape ({"days": [...]}) or a
// bare array of day rows. Days the file never mentions stay closed.
func loadWeekFile(path string) (domain.WeekSchedule, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.WeekSchedule{}, err
	}

	var rows []domain.DayHours
	var wrapper struct {
		Days []domain.DayHours `json:"days"`
	}
	if err := json.Unmarshal(raw, &wrapper); err == nil {
		rows = wrapper.Days
	} else if err := json.Unmarshal(raw, &rows); err != nil {
		return domain.WeekSchedule{}, fmt.Errorf("parse %s: %w", path, err)
	}

	week := domain.NewClosedWeek()
	for _, row := range rows {
		row.Source = domain.NormalizeSource(string(row.Source))
		if err := row.Validate(); err != nil {
			return domain.WeekSchedule{}, fmt.Errorf("%s: %w", path, err)
		}
		week[row.Day] = row
	}
	return week, nil
}

func printWeek(cmd *cobra.Command, week domain.WeekSchedule) {
	out := cmd.OutOrStdout()
	for day, row := range week {
		fmt.Fprintf(out, "%-10s %-21s %s\n", domain.DayName(day), row.DisplayRange(), row.Source)
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
