package session

import "fmt"

// StartSummary announces the first work interval with the full parameters.
func StartSummary(cfg Config) string {
	return fmt.Sprintf("ctimer has started! Good luck\n"+
		"%d pomodoros of %d minutes, with short breaks of %d minutes and long breaks of %d minutes (every %d)\n"+
		"Total session time of %d minutes, of which %d are work",
		cfg.Count, cfg.WorkMinutes, cfg.ShortBreakMinutes, cfg.LongBreakMinutes, cfg.Frequency,
		cfg.TotalMinutes, cfg.WorkTotal())
}

// WorkSummary announces the work interval at index i.
func WorkSummary(cfg Config, i int) string {
	return fmt.Sprintf("[%d/%d] pomodoro will last %d minutes", i+1, cfg.Count, cfg.WorkMinutes)
}

// BreakSummary announces the break that follows work interval ev.Index.
func BreakSummary(cfg Config, ev Event) string {
	kind := "short"
	if ev.Kind == LongBreak {
		kind = "long"
	}
	return fmt.Sprintf("[%d/%d] %s break will last %d minutes", ev.Index+1, cfg.Count-1, kind, ev.Minutes)
}

// CompleteSummary announces the end of the session.
func CompleteSummary(name string) string {
	if name == "" {
		return "All tasks done. Bravo!"
	}
	return fmt.Sprintf("All tasks done. Bravo, %s!", name)
}
