package match

// Normalize flattens a match into canonical appearances, ordered by team color
// and then by sheet order.
//
// Appearance-level goals, own goals and clean sheets are authoritative. For
// legacy records that only carry attendee names, the top-level scorers,
// ownGoals and cleanSheets arrays fill those fields instead. Only names on
// the attendance list are credited; Unlisted reports the ones that are not.
func Normalize(m Match) []Appearance {
	out := make([]Appearance, 0)
	for _, color := range m.Attendance.Colors() {
		out = append(out, m.Attendance.Teams[color]...)
	}
	if !m.Attendance.Legacy {
		return out
	}

	index := legacyIndex(out)
	for _, ref := range m.Scorers {
		if i, ok := index[ref.Name]; ok {
			out[i].Goals += ref.GoalCount(0)
		}
	}
	for _, ref := range m.OwnGoals {
		if i, ok := index[ref.Name]; ok {
			out[i].OwnGoals += ref.GoalCount(1)
		}
	}
	for _, ref := range m.CleanSheets {
		if i, ok := index[ref.Name]; ok {
			out[i].CleanSheet = true
		}
	}

	return out
}

// Unlisted returns the scorer, own-goal and clean-sheet names of a legacy
// match that are missing from its attendance list, in first-seen order.
// Positioned matches always return nil.
func Unlisted(m Match) []string {
	if !m.Attendance.Legacy {
		return nil
	}

	var listed []Appearance
	for _, color := range m.Attendance.Colors() {
		listed = append(listed, m.Attendance.Teams[color]...)
	}
	index := legacyIndex(listed)
	seen := make(map[string]struct{})
	var out []string
	check := func(name string) {
		if name == "" {
			return
		}
		if _, ok := index[name]; ok {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	for _, ref := range m.Scorers {
		check(ref.Name)
	}
	for _, ref := range m.OwnGoals {
		check(ref.Name)
	}
	for _, ref := range m.CleanSheets {
		check(ref.Name)
	}
	return out
}

func legacyIndex(sheet []Appearance) map[string]int {
	index := make(map[string]int, len(sheet))
	for i, app := range sheet {
		if _, ok := index[app.Name]; !ok {
			index[app.Name] = i
		}
	}
	return index
}
