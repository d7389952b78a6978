package models

// ExecutionInfo records when and where a dataset-producing run happened.
// All fields are advisory; consumers must tolerate their absence.
type ExecutionInfo struct {
	Timestamp       string `json:"timestamp,omitempty"`
	OS              string `json:"os,omitempty"`
	CPUCount        int    `json:"cpu_count,omitempty"`
	DurationSeconds *int64 `json:"duration_seconds,omitempty"`
}

// Envelope wraps a prepared dataset with its execution metadata. Older
// exports wrote the metadata under "last_execution", newer ones under
// "last_export"; both keys are accepted and neither is required.
type Envelope[T any] struct {
	LastExecution *ExecutionInfo `json:"last_execution,omitempty"`
	LastExport    *ExecutionInfo `json:"last_export,omitempty"`
	Data          T              `json:"data"`
}

// Metadata returns whichever execution record is present, preferring the
// newer key.
func (e *Envelope[T]) Metadata() *ExecutionInfo {
	if e.LastExport != nil {
		return e.LastExport
	}
	return e.LastExecution
}
