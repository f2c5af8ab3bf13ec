package exitcode

const (
	Success         = 0
	UsageError      = 1
	ValidationError = 2
	DBConnError     = 3
	SourceError     = 4
	ReportError     = 5
	RenderError     = 6
	StoreError      = 7
)
