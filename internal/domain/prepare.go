package domain

// PrepareResult represents the result of preparing one worker's test database
type PrepareResult struct {
	WorkerID int
	Success  bool
	Output   string
	Error    error
}
