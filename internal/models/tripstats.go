package models

// AvgTripTimeByMonth is one row of the monthly trip statistics dataset.
type AvgTripTimeByMonth struct {
	Year           int     `json:"year"`
	Month          int     `json:"month"`
	AvgTripSeconds float64 `json:"avg_trip_seconds"`
	TripCount      int64   `json:"trip_count"`
}

// TripStatsList is the trip_stats.json payload.
type TripStatsList struct {
	Rows []AvgTripTimeByMonth `json:"rows"`
}
