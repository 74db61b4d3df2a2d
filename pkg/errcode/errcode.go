package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBUnknownDriverError
	DBNotConnectedError
	DBTableCheckError
	DBDropTableError

	// Schema errors
	SchemaCreateError
	SchemaMigrateError
	SchemaCollationError

	// Fetch errors
	FetchDownloadError
	FetchUnzipError

	// Import errors
	ImportFileNotFoundError
	ImportMalformedFileError
	ImportInsertError
	ImportInProgressError

	// Store errors
	StoreNotFoundError
	StoreValidationError
	StoreConflictError
	StoreQueryError
)
