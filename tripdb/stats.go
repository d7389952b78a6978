package tripdb

import (
	"fmt"

	"veloviz.transitdata.no/internal/models"
)

// AvgTripTimeByMonth aggregates mean ride duration and ride count per
// calendar month over everything ingested so far.
func (c *Client) AvgTripTimeByMonth() ([]models.AvgTripTimeByMonth, error) {
	rows, err := c.DB.Query(`
		SELECT year, month, AVG(duration_sec), COUNT(*)
		FROM trips
		GROUP BY year, month
		ORDER BY year, month;
	`)
	if err != nil {
		return nil, fmt.Errorf("error querying trip stats: %w", err)
	}
	defer rows.Close() // nolint:errcheck

	var stats []models.AvgTripTimeByMonth
	for rows.Next() {
		var s models.AvgTripTimeByMonth
		if err := rows.Scan(&s.Year, &s.Month, &s.AvgTripSeconds, &s.TripCount); err != nil {
			return nil, fmt.Errorf("error scanning trip stats row: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stats, nil
}
