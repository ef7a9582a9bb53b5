package domain

// DayToken identifies one of the seven weekday buckets an exercise can be
// scheduled on, or the synthetic DayUnscheduled bucket.
type DayToken string

const (
	DaySegunda DayToken = "segunda"
	DayTerca   DayToken = "terca"
	DayQuarta  DayToken = "quarta"
	DayQuinta  DayToken = "quinta"
	DaySexta   DayToken = "sexta"
	DaySabado  DayToken = "sabado"
	DayDomingo DayToken = "domingo"

	// DayUnscheduled collects exercises with no assigned day.
	DayUnscheduled DayToken = "semDias"
)

// WeekDays lists the seven weekday tokens in display order.
var WeekDays = []DayToken{
	DaySegunda, DayTerca, DayQuarta, DayQuinta, DaySexta, DaySabado, DayDomingo,
}

var dayDisplayNames = map[DayToken]string{
	DaySegunda:     "Segunda-feira",
	DayTerca:       "Terça-feira",
	DayQuarta:      "Quarta-feira",
	DayQuinta:      "Quinta-feira",
	DaySexta:       "Sexta-feira",
	DaySabado:      "Sábado",
	DayDomingo:     "Domingo",
	DayUnscheduled: "Sem dia específico",
}

// DayDisplayName returns the Portuguese display name for a day token.
// Unknown tokens are returned as-is.
func DayDisplayName(day DayToken) string {
	if name, ok := dayDisplayNames[day]; ok {
		return name
	}
	return string(day)
}

// GroupExercisesByDay partitions an exercise list into per-weekday buckets
// for display. All eight buckets are always present in the result.
//
// This is a fan-out, not a partition: an exercise scheduled on several days
// is appended to every one of those buckets (the same value replicated, not
// deduplicated). Exercises with no days, and any occurrence of a token that
// is not one of the seven weekdays, land in the DayUnscheduled bucket.
func GroupExercisesByDay(exercises []Exercise) map[DayToken][]Exercise {
	buckets := make(map[DayToken][]Exercise, len(WeekDays)+1)
	for _, day := range WeekDays {
		buckets[day] = []Exercise{}
	}
	buckets[DayUnscheduled] = []Exercise{}

	for _, ex := range exercises {
		if len(ex.Days) == 0 {
			buckets[DayUnscheduled] = append(buckets[DayUnscheduled], ex)
			continue
		}
		for _, day := range ex.Days {
			if _, ok := dayDisplayNames[day]; ok && day != DayUnscheduled {
				buckets[day] = append(buckets[day], ex)
			} else {
				buckets[DayUnscheduled] = append(buckets[DayUnscheduled], ex)
			}
		}
	}
	return buckets
}
