package dbprep

// Preparer prepares the per-worker test databases before an api run
type Preparer interface {
	Run(workerCount int, noFresh bool) error
}
