package constants

// Form field names accepted by POST /tasks
const (
	FormFieldTaskType      = "taskType"
	FormFieldTaskID        = "taskId"
	FormFieldDocumentation = "taskDocumentation"
)

// Date layout used by deadline fields (HTML date input)
const DateLayout = "2006-01-02"

// Upload limits
const (
	DefaultMaxUploadMB = 32
	MinTaskIDDigits    = 2
)

// Export formats
const (
	ExportFormatJSON = "json"
	ExportFormatCSV  = "csv"
	ExportFormatPDF  = "pdf"
)

// Store drivers
const (
	StoreDriverFile     = "file"
	StoreDriverSQLite   = "sqlite"
	StoreDriverMySQL    = "mysql"
	StoreDriverPostgres = "postgres"
)

// MaxDraftedTasks caps how many tasks one drafting request may create
const MaxDraftedTasks = 20
