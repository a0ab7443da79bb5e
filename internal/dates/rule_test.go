package dates

import (
	"testing"
	"time"
)

func TestParse_Variants(t *testing.T) {
	tests := []struct {
		rule string
		want Rule
	}{
		{"July 1", Absolute{Year: 2023, Month: time.July, Day: 1}},
		{"December 25 2021", Absolute{Year: 2021, Month: time.December, Day: 25}},
		{"Easter", Easter{Year: 2023}},
		{"Third Monday September", OrdinalWeekday{Year: 2023, Month: time.September, Weekday: time.Monday, N: 3}},
		{"The First Monday in August", OrdinalWeekday{Year: 2023, Month: time.August, Weekday: time.Monday, N: 1}},
		{"Friday before Easter", Relative{Weekday: time.Friday, Position: Before, Anchor: Easter{Year: 2023}}},
		{"Tuesday after December 26 2021", Relative{
			Weekday:  time.Tuesday,
			Position: After,
			Anchor:   Absolute{Year: 2021, Month: time.December, Day: 26},
		}},
		{"Monday NEAR July 12", Relative{
			Weekday:  time.Monday,
			Position: Near,
			Anchor:   Absolute{Year: 2023, Month: time.July, Day: 12},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.rule, func(t *testing.T) {
			got, err := Parse(tt.rule, 2023)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.rule, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %#v, want %#v", tt.rule, got, tt.want)
			}
		})
	}
}

func TestOffsetToWeekday(t *testing.T) {
	thursday := time.Date(2022, time.March, 17, 0, 0, 0, 0, time.UTC)
	friday := time.Date(2023, time.March, 17, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2021, time.July, 12, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		target   time.Weekday
		anchor   time.Time
		position Position
		want     int
	}{
		{"before", time.Monday, thursday, Before, -3},
		{"after", time.Monday, thursday, After, 4},
		{"near prefers before when not farther", time.Monday, thursday, Near, -3},
		{"near picks after when closer", time.Monday, friday, Near, 3},
		{"near on the anchor weekday", time.Monday, monday, Near, 0},
		{"before on the anchor weekday is a week back", time.Monday, monday, Before, -7},
		{"after on the anchor weekday is a week ahead", time.Monday, monday, After, 7},
		{"sunday", time.Sunday, thursday, After, 3},
		{"wednesday near", time.Wednesday, thursday, Near, -1},
		{"saturday near", time.Saturday, thursday, Near, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := offsetToWeekday(tt.target, tt.anchor, tt.position)
			if got != tt.want {
				t.Errorf("offsetToWeekday(%s, %s, %s) = %d, want %d",
					tt.target, FormatDate(tt.anchor), tt.position, got, tt.want)
			}
		})
	}
}

func TestOffsetToWeekday_Near(t *testing.T) {
	// 2024-01-01 is a Monday; anchors run Monday through Sunday.
	anchor := func(day int) time.Time {
		return time.Date(2024, time.January, day, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		target time.Weekday
		want   [7]int
	}{
		{time.Monday, [7]int{0, -1, -2, -3, 3, 2, 1}},
		{time.Tuesday, [7]int{1, 0, -1, -2, -3, 3, 2}},
		{time.Friday, [7]int{-3, 3, 2, 1, 0, -1, -2}},
	}

	for _, tt := range tests {
		for i, want := range tt.want {
			a := anchor(i + 1)
			if got := offsetToWeekday(tt.target, a, Near); got != want {
				t.Errorf("%s near %s = %d, want %d", tt.target, a.Weekday(), got, want)
			}
		}
	}
}

func TestParse_TokenCase(t *testing.T) {
	tests := []struct {
		rule string
		want Rule
	}{
		{"monday before may 25", Relative{
			Weekday:  time.Monday,
			Position: Before,
			Anchor:   Absolute{Year: 2023, Month: time.May, Day: 25},
		}},
		{"Monday Before May 25", Relative{
			Weekday:  time.Monday,
			Position: Before,
			Anchor:   Absolute{Year: 2023, Month: time.May, Day: 25},
		}},
		{"FRIDAY after JULY 1", Relative{
			Weekday:  time.Friday,
			Position: After,
			Anchor:   Absolute{Year: 2023, Month: time.July, Day: 1},
		}},
		{"third monday september", OrdinalWeekday{Year: 2023, Month: time.September, Weekday: time.Monday, N: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.rule, func(t *testing.T) {
			got, err := Parse(tt.rule, 2023)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.rule, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %#v, want %#v", tt.rule, got, tt.want)
			}
		})
	}
}

func TestEasterSunday(t *testing.T) {
	known := map[int]string{
		1818: "1818-03-22",
		1943: "1943-04-25",
		2019: "2019-04-21",
		2020: "2020-04-12",
		2021: "2021-04-04",
		2022: "2022-04-17",
		2023: "2023-04-09",
		2024: "2024-03-31",
		2025: "2025-04-20",
		2038: "2038-04-25",
	}
	for year, want := range known {
		got := easterSunday(year)
		if FormatDate(got) != want {
			t.Errorf("easterSunday(%d) = %s, want %s", year, FormatDate(got), want)
		}
		if got.Location() != time.UTC || got.Hour() != 0 {
			t.Errorf("easterSunday(%d) = %s, want UTC midnight", year, got)
		}
	}

	for year := 1900; year <= 2100; year++ {
		if got := easterSunday(year); got.Weekday() != time.Sunday {
			t.Errorf("easterSunday(%d) = %s is a %s", year, FormatDate(got), got.Weekday())
		}
	}
}

func TestEndsWithNumber(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"July 1", true},
		{"Monday near July 12", true},
		{"Third Monday September", false},
		{"Friday before Easter", false},
		{"Monday near July 10", true},
		{"May 0", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := endsWithNumber(tt.in); got != tt.want {
			t.Errorf("endsWithNumber(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLiteralRule(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Monday near July 12", "July 12"},
		{"Monday before May 25", "Monday before May 25"},
		{"Monday near may 24", "Monday near may 24"},
		{"Friday before Easter", "Friday before Easter"},
		{"  December 25 ", "December 25"},
	}
	for _, tt := range tests {
		if got := literalRule(tt.in); got != tt.want {
			t.Errorf("literalRule(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
