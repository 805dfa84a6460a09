package processor

// ProgressReporter receives per-batch progress callbacks. Implementations
// must be safe for concurrent OnFileProcessed calls.
type ProgressReporter interface {
	// OnStart is called once with the number of files in the batch.
	OnStart(totalFiles int)

	// OnFileProcessed is called after each file, successful or not.
	OnFileProcessed(file string)

	// OnComplete is called once after the last file.
	OnComplete(stats Stats)
}

// NoOpProgressReporter is a progress reporter that does nothing.
type NoOpProgressReporter struct{}

func (NoOpProgressReporter) OnStart(int)            {}
func (NoOpProgressReporter) OnFileProcessed(string) {}
func (NoOpProgressReporter) OnComplete(Stats)       {}
