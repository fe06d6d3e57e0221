// Package report aggregates work log records into per-day and per-category
// totals and renders them for sharing.
package report

import (
	"sort"
	"time"

	"github.com/fakeyudi/ctimer/internal/worklog"
)

// Report is the complete, renderable summary of a date range.
type Report struct {
	From       time.Time        `json:"from"`
	To         time.Time        `json:"to"`
	Author     string           `json:"author,omitempty"`
	Pomodoros  int              `json:"pomodoros"`
	Minutes    int              `json:"minutes"`
	Days       []DayTotal       `json:"days"`
	Categories []CategoryTotal  `json:"categories"`
	Entries    []worklog.Record `json:"entries"`
}

// DayTotal holds the work done on one local calendar date.
type DayTotal struct {
	Date      string `json:"date"` // YYYY-MM-DD
	Pomodoros int    `json:"pomodoros"`
	Minutes   int    `json:"minutes"`
}

// CategoryTotal holds the work done under one category.
type CategoryTotal struct {
	Category  string `json:"category"`
	Pomodoros int    `json:"pomodoros"`
	Minutes   int    `json:"minutes"`
}

// Build aggregates records logged between the local dates of from and to.
// Every day in the range gets a DayTotal, including days with no work.
// Categories are ordered by minutes, largest first.
func Build(records []worklog.Record, from, to time.Time) *Report {
	start := startOfDay(from)
	end := startOfDay(to)

	r := &Report{
		From:       start,
		To:         end,
		Days:       []DayTotal{},
		Categories: []CategoryTotal{},
		Entries:    []worklog.Record{},
	}

	byDay := map[string]*DayTotal{}
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		r.Days = append(r.Days, DayTotal{Date: day.Format("2006-01-02")})
	}
	for i := range r.Days {
		byDay[r.Days[i].Date] = &r.Days[i]
	}

	byCategory := map[string]*CategoryTotal{}
	var order []string
	for _, rec := range records {
		d, ok := byDay[rec.Timestamp.Local().Format("2006-01-02")]
		if !ok {
			continue
		}
		d.Pomodoros++
		d.Minutes += rec.Minutes
		r.Pomodoros++
		r.Minutes += rec.Minutes
		r.Entries = append(r.Entries, rec)

		c, ok := byCategory[rec.Category]
		if !ok {
			c = &CategoryTotal{Category: rec.Category}
			byCategory[rec.Category] = c
			order = append(order, rec.Category)
		}
		c.Pomodoros++
		c.Minutes += rec.Minutes
	}

	for _, name := range order {
		r.Categories = append(r.Categories, *byCategory[name])
	}
	sort.SliceStable(r.Categories, func(i, j int) bool {
		return r.Categories[i].Minutes > r.Categories[j].Minutes
	})
	sort.SliceStable(r.Entries, func(i, j int) bool {
		return r.Entries[i].Timestamp.Before(r.Entries[j].Timestamp)
	})
	return r
}

// ActiveDays returns the number of days with at least one pomodoro.
func (r *Report) ActiveDays() int {
	n := 0
	for _, d := range r.Days {
		if d.Pomodoros > 0 {
			n++
		}
	}
	return n
}

func startOfDay(t time.Time) time.Time {
	t = t.Local()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}
