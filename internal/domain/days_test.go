package domain

import "testing"

func TestGroupExercisesByDay_FanOut(t *testing.T) {
	squat := Exercise{ID: "1", Name: "Agachamento", Days: []DayToken{DaySegunda, DayQuarta}}
	row := Exercise{ID: "2", Name: "Remada", Days: []DayToken{}}

	buckets := GroupExercisesByDay([]Exercise{squat, row})

	if len(buckets) != 8 {
		t.Fatalf("expected 8 buckets, got %d", len(buckets))
	}

	// An exercise with multiple days is replicated into every named bucket,
	// not partitioned. That is intentional behavior, not a bug to fix.
	if len(buckets[DaySegunda]) != 1 || buckets[DaySegunda][0].ID != "1" {
		t.Errorf("segunda bucket = %v, want [Agachamento]", buckets[DaySegunda])
	}
	if len(buckets[DayQuarta]) != 1 || buckets[DayQuarta][0].ID != "1" {
		t.Errorf("quarta bucket = %v, want [Agachamento]", buckets[DayQuarta])
	}
	if len(buckets[DayUnscheduled]) != 1 || buckets[DayUnscheduled][0].ID != "2" {
		t.Errorf("semDias bucket = %v, want [Remada]", buckets[DayUnscheduled])
	}

	for _, day := range []DayToken{DayTerca, DayQuinta, DaySexta, DaySabado, DayDomingo} {
		if len(buckets[day]) != 0 {
			t.Errorf("bucket %s should be empty, got %v", day, buckets[day])
		}
	}
}

func TestGroupExercisesByDay_UnknownToken(t *testing.T) {
	ex := Exercise{ID: "1", Name: "Prancha", Days: []DayToken{"feriado", DaySexta}}

	buckets := GroupExercisesByDay([]Exercise{ex})

	if len(buckets[DaySexta]) != 1 {
		t.Errorf("sexta bucket = %v, want one entry", buckets[DaySexta])
	}
	if len(buckets[DayUnscheduled]) != 1 {
		t.Errorf("unknown day token should fall into semDias, got %v", buckets[DayUnscheduled])
	}
}

func TestGroupExercisesByDay_Empty(t *testing.T) {
	buckets := GroupExercisesByDay(nil)
	if len(buckets) != 8 {
		t.Fatalf("expected all 8 buckets even for empty input, got %d", len(buckets))
	}
	for day, exs := range buckets {
		if len(exs) != 0 {
			t.Errorf("bucket %s not empty: %v", day, exs)
		}
	}
}

func TestDayDisplayName(t *testing.T) {
	tests := []struct {
		day  DayToken
		want string
	}{
		{DaySegunda, "Segunda-feira"},
		{DaySabado, "Sábado"},
		{DayUnscheduled, "Sem dia específico"},
		{"feriado", "feriado"},
	}
	for _, tt := range tests {
		if got := DayDisplayName(tt.day); got != tt.want {
			t.Errorf("DayDisplayName(%q) = %q, want %q", tt.day, got, tt.want)
		}
	}
}
