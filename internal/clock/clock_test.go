package clock

import "testing"

func TestDayBefore(t *testing.T) {
	cases := []struct {
		name string
		day  string
		want string
	}{
		{
			name: "mid_month",
			day:  "2026-08-30",
			want: "2026-08-29",
		},
		{
			name: "month_boundary",
			day:  "2026-08-01",
			want: "2026-07-31",
		},
		{
			name: "year_boundary",
			day:  "2026-01-01",
			want: "2025-12-31",
		},
		{
			name: "leap_day",
			day:  "2024-03-01",
			want: "2024-02-29",
		},
		{
			name: "malformed",
			day:  "yesterday",
			want: "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DayBefore(tc.day)
			if got != tc.want {
				t.Fatalf("DayBefore(%q)=%q, want %q", tc.day, got, tc.want)
			}
		})
	}
}

func TestFixedClock(t *testing.T) {
	c := Fixed{Day: "2026-08-30"}
	if got := c.Today(); got != "2026-08-30" {
		t.Fatalf("Fixed.Today()=%q, want 2026-08-30", got)
	}
}

func TestRealClockFormat(t *testing.T) {
	day := New().Today()
	if len(day) != 10 || day[4] != '-' || day[7] != '-' {
		t.Fatalf("Today()=%q, want YYYY-MM-DD", day)
	}
}
