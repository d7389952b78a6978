package tripdb

// TripRecord is the subset of one upstream trip dump entry the statistics
// pipeline consumes. Station ids arrive numeric in older dumps and string
// in newer ones, so they are coerced on ingest.
type TripRecord struct {
	Duration       int64 `json:"duration"`
	StartStationID any   `json:"start_station_id"`
	EndStationID   any   `json:"end_station_id"`
}
