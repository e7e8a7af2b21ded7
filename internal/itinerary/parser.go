// Package itinerary extracts per-day activities from free-form itinerary text.
package itinerary

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// AttachMode decides which day receives a line that is not a day header.
type AttachMode int

const (
	// AttachMaxDay attaches orphan lines to the highest day number seen so far.
	AttachMaxDay AttachMode = iota

	// AttachLastSeen attaches orphan lines to the most recent header in text order.
	AttachLastSeen
)

// ParseAttachMode maps "max-day" and "last-seen" to a mode. Anything else is AttachMaxDay.
func ParseAttachMode(s string) AttachMode {
	if strings.EqualFold(strings.TrimSpace(s), "last-seen") {
		return AttachLastSeen
	}
	return AttachMaxDay
}

func (m AttachMode) String() string {
	if m == AttachLastSeen {
		return "last-seen"
	}
	return "max-day"
}

// dayHeader matches "Day 1: Museum", "day2 - hike", " DAY 3".
var dayHeader = regexp.MustCompile(`(?i)^\s*day\s*(\d+)\s*[:-]?\s*(.*)$`)

// Activities maps a 1-based day number to its activities in text order.
type Activities map[int][]string

// Days returns the day numbers in ascending order.
func (a Activities) Days() []int {
	days := make([]int, 0, len(a))
	for d := range a {
		days = append(days, d)
	}
	sort.Ints(days)
	return days
}

// Parser parses itinerary text.
type Parser struct {
	mode AttachMode
}

// NewParser creates a parser with the given attach mode.
func NewParser(mode AttachMode) *Parser {
	return &Parser{mode: mode}
}

// Parse parses with the default AttachMaxDay mode.
func Parse(text string) Activities {
	return NewParser(AttachMaxDay).Parse(text)
}

// Parse extracts activities line by line. Lines before the first day header
// and blank lines are dropped. It never fails; unrecognised text just yields
// fewer activities.
func (p *Parser) Parse(text string) Activities {
	activities := Activities{}
	if text == "" {
		return activities
	}

	maxDay, lastDay := 0, 0
	seen := false

	for _, line := range strings.Split(text, "\n") {
		if m := dayHeader.FindStringSubmatch(line); m != nil {
			if day, err := strconv.Atoi(m[1]); err == nil {
				if _, ok := activities[day]; !ok {
					activities[day] = []string{}
				}
				if activity := strings.TrimSpace(m[2]); activity != "" {
					activities[day] = append(activities[day], activity)
				}

				if !seen || day > maxDay {
					maxDay = day
				}
				lastDay = day
				seen = true
				continue
			}
		}

		trimmed := strings.TrimSpace(line)
		if !seen || trimmed == "" {
			continue
		}

		target := maxDay
		if p.mode == AttachLastSeen {
			target = lastDay
		}
		activities[target] = append(activities[target], trimmed)
	}

	return activities
}
