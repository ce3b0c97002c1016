package domain

import "testing"

func TestNewClosedWeek(t *testing.T) {
	week := NewClosedWeek()
	for day, row := range week {
		if row.Day != day {
			t.Fatalf("expected day %d, got %d", day, row.Day)
		}
		if !row.Closed {
			t.Fatalf("expected day %d closed", day)
		}
		if row.Open != "" || row.Close != "" {
			t.Fatalf("expected empty clock values on day %d", day)
		}
		if row.Source != SourceExternal {
			t.Fatalf("expected external source on day %d, got %s", day, row.Source)
		}
	}
	if err := week.Validate(); err != nil {
		t.Fatalf("closed week should validate: %v", err)
	}
}

func TestDayHoursOpenInterval(t *testing.T) {
	tests := []struct {
		name      string
		row       DayHours
		wantOpen  int
		wantClose int
		wantOK    bool
	}{
		{
			name:      "regular range",
			row:       DayHours{Day: 1, Open: "09:00", Close: "17:00"},
			wantOpen:  540,
			wantClose: 1020,
			wantOK:    true,
		},
		{
			name:      "sentinel close covers final minute",
			row:       DayHours{Day: 5, Open: "22:00", Close: "23:59"},
			wantOpen:  1320,
			wantClose: MinutesPerDay,
			wantOK:    true,
		},
		{
			name: "closed day",
			row:  DayHours{Day: 0, Closed: true},
		},
		{
			name: "open without clock values",
			row:  DayHours{Day: 2},
		},
		{
			name: "malformed open",
			row:  DayHours{Day: 3, Open: "9am", Close: "17:00"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			openMin, closeMin, ok := test.row.OpenInterval()
			if ok != test.wantOK {
				t.Fatalf("expected ok=%v, got %v", test.wantOK, ok)
			}
			if !ok {
				return
			}
			if openMin != test.wantOpen || closeMin != test.wantClose {
				t.Fatalf("expected [%d,%d), got [%d,%d)", test.wantOpen, test.wantClose, openMin, closeMin)
			}
		})
	}
}

func TestWeekScheduleValidate(t *testing.T) {
	week := NewClosedWeek()
	week[2] = DayHours{Day: 2, Open: "10:00", Close: "22:00", Source: SourceManual}
	if err := week.Validate(); err != nil {
		t.Fatalf("expected valid week, got %v", err)
	}

	broken := NewClosedWeek()
	broken[4] = DayHours{Day: 4, Closed: true, Open: "10:00"}
	if err := broken.Validate(); err == nil {
		t.Fatal("expected closed day with clock values to fail validation")
	}

	shifted := NewClosedWeek()
	shifted[3].Day = 5
	if err := shifted.Validate(); err == nil {
		t.Fatal("expected mismatched day index to fail validation")
	}
}

func TestDayHoursValidate(t *testing.T) {
	tests := []struct {
		name    string
		row     DayHours
		wantErr bool
	}{
		{name: "open day", row: DayHours{Day: 1, Open: "09:00", Close: "17:00"}},
		{name: "sentinel close", row: DayHours{Day: 5, Open: "22:00", Close: "23:59"}},
		{name: "closed day", row: DayHours{Day: 0, Closed: true}},
		{name: "day out of range", row: DayHours{Day: 7, Closed: true}, wantErr: true},
		{name: "closed with clocks", row: DayHours{Day: 2, Closed: true, Open: "09:00"}, wantErr: true},
		{name: "bad clock", row: DayHours{Day: 3, Open: "9am", Close: "17:00"}, wantErr: true},
		{name: "inverted range", row: DayHours{Day: 4, Open: "18:00", Close: "09:00"}, wantErr: true},
		{name: "zero width range", row: DayHours{Day: 6, Open: "09:00", Close: "09:00"}, wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.row.Validate()
			if (err != nil) != test.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, test.wantErr)
			}
		})
	}
}

func TestDisplayRange(t *testing.T) {
	open := DayHours{Day: 1, Open: "09:00", Close: "17:30"}
	if got := open.DisplayRange(); got != "9:00 AM - 5:30 PM" {
		t.Fatalf("unexpected display range: %s", got)
	}
	closed := DayHours{Day: 0, Closed: true}
	if got := closed.DisplayRange(); got != "Closed" {
		t.Fatalf("expected Closed, got %s", got)
	}
}

func TestNormalizeSource(t *testing.T) {
	if got := NormalizeSource("manual"); got != SourceManual {
		t.Fatalf("expected manual, got %s", got)
	}
	if got := NormalizeSource("scraper"); got != SourceExternal {
		t.Fatalf("expected external fallback, got %s", got)
	}
}
