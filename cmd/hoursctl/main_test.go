package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mesaYaHours/internal/modules/hours/domain"
)

const mondayFeed = `{"periods":[{"open":{"day":1,"hour":9},"close":{"day":1,"hour":17}}]}`

func runHoursctl(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestReconcilePrintsWeekTable(t *testing.T) {
	feed := writeFixture(t, "feed.json", mondayFeed)

	out, err := runHoursctl(t, "reconcile", "--feed", feed)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if !strings.Contains(out, "Monday") || !strings.Contains(out, "9:00 AM - 5:00 PM") {
		t.Fatalf("expected Monday hours in output, got:\n%s", out)
	}
	if !strings.Contains(out, "Sunday") || !strings.Contains(out, "Closed") {
		t.Fatalf("expected closed Sunday in output, got:\n%s", out)
	}
}

func TestReconcileKeepsManualRows(t *testing.T) {
	feed := writeFixture(t, "feed.json", mondayFeed)
	base := writeFixture(t, "week.json",
		`[{"dayOfWeek":1,"openTime":"10:00","closeTime":"14:00","source":"manual"}]`)

	out, err := runHoursctl(t, "reconcile", "--feed", feed, "--base", base)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if !strings.Contains(out, "10:00 AM - 2:00 PM") || !strings.Contains(out, "manual") {
		t.Fatalf("expected manual Monday row to survive, got:\n%s", out)
	}
	if strings.Contains(out, "9:00 AM - 5:00 PM") {
		t.Fatalf("feed row overwrote a manual edit:\n%s", out)
	}
}

func TestReconcileEmitsJSON(t *testing.T) {
	feed := writeFixture(t, "feed.json", mondayFeed)

	out, err := runHoursctl(t, "reconcile", "--feed", feed, "--json")
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	var week domain.WeekSchedule
	if err := json.Unmarshal([]byte(out), &week); err != nil {
		t.Fatalf("decode week: %v\n%s", err, out)
	}
	if week[1].Open != "09:00" || week[1].Close != "17:00" {
		t.Fatalf("unexpected Monday row: %+v", week[1])
	}
	if !week[0].Closed {
		t.Fatalf("expected Sunday closed, got %+v", week[0])
	}
}

func TestReconcileFlagsProseOnlyPayload(t *testing.T) {
	feed := writeFixture(t, "feed.json", `{"hoursText":"lunes a viernes por la tarde"}`)

	out, err := runHoursctl(t, "reconcile", "--feed", feed)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if !strings.Contains(out, "no period list") {
		t.Fatalf("expected prose-only notice, got:\n%s", out)
	}
}

func TestReconcileRejectsNonHoursPayload(t *testing.T) {
	feed := writeFixture(t, "feed.json", `{"rating":4.5}`)

	if _, err := runHoursctl(t, "reconcile", "--feed", feed); err == nil {
		t.Fatal("expected an error for a payload with no hours shape")
	}
}

func TestStatusReportsOpenThenClosed(t *testing.T) {
	feed := writeFixture(t, "feed.json", mondayFeed)

	out, err := runHoursctl(t, "status", "--feed", feed, "--at", "2024-03-11T12:00:00Z")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, ": open") {
		t.Fatalf("expected open at Monday noon, got:\n%s", out)
	}

	out, err = runHoursctl(t, "status", "--feed", feed, "--at", "2024-03-11T20:00:00Z")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, ": closed") {
		t.Fatalf("expected closed at Monday evening, got:\n%s", out)
	}
	if !strings.Contains(out, "2024-03-18T09:00:00Z") || !strings.Contains(out, "Monday 9:00 AM") {
		t.Fatalf("expected next Monday opening, got:\n%s", out)
	}
}

func TestStatusPrintsGuestLabel(t *testing.T) {
	feed := writeFixture(t, "feed.json", mondayFeed)

	out, err := runHoursctl(t, "status", "--feed", feed, "--at", "2024-03-11T07:00:00Z", "--capacity", "5")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, "Opens at 9:00 AM") {
		t.Fatalf("expected same-day opening label, got:\n%s", out)
	}
}

func TestStatusRequiresASource(t *testing.T) {
	if _, err := runHoursctl(t, "status", "--at", "2024-03-11T12:00:00Z"); err == nil {
		t.Fatal("expected an error without --feed or --week")
	}
}

func TestStatusRejectsBadInstant(t *testing.T) {
	feed := writeFixture(t, "feed.json", mondayFeed)

	if _, err := runHoursctl(t, "status", "--feed", feed, "--at", "mediodía"); err == nil {
		t.Fatal("expected an error for a non-RFC3339 instant")
	}
}

func TestSeedValidatesFile(t *testing.T) {
	seed := writeFixture(t, "seed.yaml", `venues:
  - id: venue-1
    capacity: 12
    hours:
      - day: 1
        open: "09:00"
        close: "17:00"
`)

	out, err := runHoursctl(t, "seed", seed)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if !strings.Contains(out, "venue venue-1: 1 hours rows, capacity 12") {
		t.Fatalf("expected venue summary, got:\n%s", out)
	}
	if !strings.Contains(out, "seed ok: 1 venues, 1 capacity fallbacks") {
		t.Fatalf("expected seed summary, got:\n%s", out)
	}
}

func TestSeedRejectsBadRows(t *testing.T) {
	seed := writeFixture(t, "seed.yaml", `venues:
  - id: venue-1
    hours:
      - day: 9
        open: "09:00"
        close: "17:00"
`)

	if _, err := runHoursctl(t, "seed", seed); err == nil {
		t.Fatal("expected an error for an out-of-range day")
	}
}
