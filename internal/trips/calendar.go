package trips

import "veloviz.transitdata.no/internal/utils"

// calendarYear lists the months the upstream source has published for one
// year. The service launched with April 2019 and the newest dump is
// January 2026.
type calendarYear struct {
	Year   int
	Months []int
}

var calendar = []calendarYear{
	{Year: 2019, Months: []int{4, 5, 6, 7, 8, 9, 10, 11, 12}},
	{Year: 2020, Months: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}},
	{Year: 2021, Months: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}},
	{Year: 2022, Months: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}},
	{Year: 2023, Months: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}},
	{Year: 2024, Months: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}},
	{Year: 2025, Months: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}},
	{Year: 2026, Months: []int{1}},
}

// Months returns every published month in chronological order.
func Months() []utils.YearMonth {
	var out []utils.YearMonth
	for _, y := range calendar {
		for _, m := range y.Months {
			out = append(out, utils.YearMonth{Year: y.Year, Month: m})
		}
	}
	return out
}

// InCalendar reports whether the upstream source publishes the given month.
func InCalendar(ym utils.YearMonth) bool {
	for _, y := range calendar {
		if y.Year != ym.Year {
			continue
		}
		for _, m := range y.Months {
			if m == ym.Month {
				return true
			}
		}
	}
	return false
}
