package clock

import (
  "time"
)

const dayLayout = "2006-01-02"

// IST is the calendar zone for all daily rollovers. Streaks and daily game
// counters roll over at midnight IST regardless of where the server runs.
var IST = time.FixedZone("IST", 5*60*60+30*60)

type Clock interface {
  Today() string
}

type realClock struct{}

func New() Clock {
  return realClock{}
}

func (realClock) Today() string {
  return time.Now().In(IST).Format(dayLayout)
}

// Fixed is a Clock pinned to a single day, for tests.
type Fixed struct {
  Day string
}

func (f Fixed) Today() string {
  return f.Day
}

// DayBefore returns the calendar day preceding day (both "YYYY-MM-DD").
// Malformed input yields an empty string, which never matches a stored date.
func DayBefore(day string) string {
  t, err := time.Parse(dayLayout, day)
  if err != nil {
    return ""
  }
  return t.AddDate(0, 0, -1).Format(dayLayout)
}
