package logging

// LogEntry represents a structured log record with fields particularly relevant to sampling runs
type LogEntry struct {
	// Standard fields
	Time     int64
	Severity Severity
	Message  string
	File     string
	Line     int
	Function string

	// Run-specific fields
	RunID     string // The sampling run this entry belongs to
	Iteration int64  // Sampler iteration at emit time, -1 when unknown

	// General structured data
	Fields map[string]interface{}
}
