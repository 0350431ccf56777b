package constants

// Run

const (
	TimeFormatYearSeconds      = "20060102T150405" // used for human readable file names
	TimeFormatYearSecondsRegex = "[0-9]{4}[0-9]{2}[0-9]{2}T[0-9]{6}"
	EmojiBang                  = "\U0001F4A5"
	ServiceName                = "deltapipe"
	EnvVarPrefix               = "DP" // prefixed for environment variables in twelveFactorMode
	MainDir                    = ".deltapipe"
	StagingFolder              = "superannotate" // sub-directory of the volume used for staged CSV files
	InsertBatchSizeDefault     = 100
)

// Secrets are mounted by the orchestrator as plain environment variables without our prefix.

const (
	EnvVarAnnotationToken = "SA_TEAM_TOKEN"
	EnvVarWarehouseToken  = "DB_ACCESS_TOKEN"
	EnvVarAnnotationURL   = EnvVarPrefix + "_SA_API_URL"
	AnnotationURLDefault  = "https://api.superannotate.com"
)

// Event parameter names.

const (
	ArgComponentIDs     = "sa_component_ids"
	ArgColumnNames      = "databricks_columns"
	ArgServerHostname   = "db_server_hostname"
	ArgHTTPPath         = "db_http_path"
	ArgCatalog          = "db_catalog"
	ArgSchema           = "db_schema"
	ArgTable            = "db_table"
	ArgVolume           = "db_volume"
	ArgCreateDeltaTable = "create_delta_table"
	ArgLoadMode         = "db_load_mode"
	ArgDriver           = "db_driver"
	ArgS3Url            = "db_s3_url"
	ArgS3Region         = "db_s3_region"
	ArgBatchSize        = "db_batch_size"
)

// Load modes and drivers.

const (
	LoadModeVolume   = "volume"
	LoadModeS3       = "s3"
	LoadModeInsert   = "insert"
	DriverDatabricks = "databricks"
	DriverOdbc       = "odbc"
	DatabricksPort   = 443
	OdbcDriverName   = "Simba Spark ODBC Driver"
)
