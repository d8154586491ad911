package domain

import (
	"fmt"
	"time"
)

// Counters are the four summary cards of a sidebar view.
type Counters struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
	Urgent    int `json:"urgent"`
}

func (c Counters) CompletionRate() float64 {
	if c.Total == 0 {
		return 0.0
	}
	return (float64(c.Completed) / float64(c.Total)) * 100.0
}

type CategoryProgress struct {
	FolderID  string `json:"folderId"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
	Percent   int    `json:"percent"`
}

func (cp CategoryProgress) IsDone() bool {
	return cp.Total > 0 && cp.Completed == cp.Total
}

type CategorySlice struct {
	FolderID string `json:"folderId"`
	Label    string `json:"label"`
	Color    string `json:"color"`
	Count    int    `json:"count"`
}

type PriorityCount struct {
	Priority Priority `json:"priority"`
	Count    int      `json:"count"`
}

type TrendMode string

const (
	TrendLine TrendMode = "line"
	TrendBar  TrendMode = "bar"
)

type TrendSeries struct {
	Mode   TrendMode `json:"mode"`
	Label  string    `json:"label"`
	Dates  []string  `json:"dates"`
	Labels []string  `json:"labels"`
	Counts []int     `json:"counts"`
}

func (ts TrendSeries) Max() int {
	m := 0
	for _, c := range ts.Counts {
		if c > m {
			m = c
		}
	}
	return m
}

type CalendarEvent struct {
	ID        int64    `json:"id"`
	Title     string   `json:"title"`
	Start     string   `json:"start"`
	End       string   `json:"end"`
	AllDay    bool     `json:"allDay"`
	Color     string   `json:"color"`
	Priority  Priority `json:"priority"`
	Completed bool     `json:"completed"`
}

// Dashboard bundles every derived aggregate of one session view.
type Dashboard struct {
	View         string             `json:"view"`
	Stat         string             `json:"stat"`
	Counters     Counters           `json:"counters"`
	Progress     []CategoryProgress `json:"progress"`
	Distribution []CategorySlice    `json:"distribution"`
	Priorities   []PriorityCount    `json:"priorities"`
	Trend        TrendSeries        `json:"trend"`
	TopUrgent    []*Task            `json:"topUrgent"`
	CalculatedAt time.Time          `json:"calculatedAt"`
}

func (d *Dashboard) GetPriorityDistribution() string {
	if len(d.Priorities) == 0 {
		return "No tasks"
	}
	s := ""
	for i, p := range d.Priorities {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%s: %d", p.Priority, p.Count)
	}
	return s
}
