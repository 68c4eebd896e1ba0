package recorder

import "time"

// BatchRun records one full pass over the company list.
type BatchRun struct {
	StartedAt  time.Time
	FinishedAt time.Time
	Total      int
	Succeeded  int
	Failed     int
}

// CompanyUpdate records the outcome of one company inside a batch.
type CompanyUpdate struct {
	Symbol    string
	Name      string
	Status    string // "OK", "FETCH_ERROR", "WRITE_ERROR"
	Error     string
	JSONPath  string
	ExcelPath string
}

// Recorder persists run history for later inspection.
type Recorder interface {
	RecordBatch(run *BatchRun) error
	RecordCompany(upd *CompanyUpdate) error
	RecentBatches(n int) ([]BatchRun, error)
	Close() error
}
