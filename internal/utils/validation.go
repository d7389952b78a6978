package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// Compiled regular expressions for validation
var (
	yearMonthPattern = regexp.MustCompile(`^(\d{4})-(\d{2})$`)

	// Dataset names are bare file names - no separators, no traversal
	datasetNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+\.(json|arrow)$`)
)

// YearMonth identifies one month of upstream trip data.
type YearMonth struct {
	Year  int
	Month int
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, ym.Month)
}

// ParseYearMonth parses a "YYYY-MM" filter argument. It validates the shape
// and that the month is a real month; whether the month falls inside the
// known upstream calendar is checked by the caller.
func ParseYearMonth(s string) (YearMonth, error) {
	m := yearMonthPattern.FindStringSubmatch(s)
	if m == nil {
		return YearMonth{}, fmt.Errorf("invalid year-month %q (expected YYYY-MM)", s)
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 {
		return YearMonth{}, fmt.Errorf("invalid month %d in %q", month, s)
	}
	return YearMonth{Year: year, Month: month}, nil
}

// ValidateDatasetName validates that a prepared-data file name is safe to
// resolve against the prepared-data directory.
func ValidateDatasetName(name string) error {
	if name == "" {
		return errors.New("dataset name cannot be empty")
	}

	if len(name) > 100 {
		return errors.New("dataset name too long (max 100 characters)")
	}

	if !datasetNamePattern.MatchString(name) {
		return errors.New("dataset name contains invalid characters")
	}

	return nil
}
