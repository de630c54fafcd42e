package config

const (
	// Database errors
	ErrInitializeDatabaseFmt = "Failed to initialize database: %v"

	// Storage errors
	ErrUnknownWorkspaceStoreFmt = "unknown workspace store %q"
	ErrUnknownArchiveFmt        = "unknown pdf archive %q"
	ErrArchiveBucketRequired    = "s3 pdf archive requires a bucket"

	// Config errors
	ErrWriteConfigContentFmt = "Failed to write config content: %v"

	ErrInternalServerError = "Internal server error"
	ErrDownloadExpired     = "Download expired or already used"
)
