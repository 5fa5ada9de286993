package score

// Summary is one journal row: a day with its movement tallies and either the
// full score or, while the survey is pending, the provisional one.
type Summary struct {
	Day         string
	Movements   int
	Bloody      int
	Score       int
	HasScore    bool // full score computed (survey present)
	Provisional int  // event-derived partial total, always available
}

// Summaries builds journal rows for the given days, newest-first order being
// the caller's concern (pass days in the order to display).
func Summaries(st HistoryStore, days []string) ([]Summary, error) {
	summaries := make([]Summary, 0, len(days))
	for _, day := range days {
		movements, err := st.MovementsOn(day)
		if err != nil {
			return nil, err
		}
		survey, err := st.Survey(day)
		if err != nil {
			return nil, err
		}

		s := Summary{
			Day:         day,
			Movements:   len(movements),
			Provisional: Provisional(day, movements),
		}
		for _, m := range movements {
			if m.Blood {
				s.Bloody++
			}
		}
		if total, ok := Compute(day, movements, survey); ok {
			s.Score = total
			s.HasScore = true
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}
