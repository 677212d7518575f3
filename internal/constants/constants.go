package constants

import "time"

// Platform is the alias platform tag recorded for every upload.
const Platform = "PokerBaazi"

const (
	UploadBatchSize    = 500
	UploadBatchDelay   = 500 * time.Millisecond
	EnrichBatchLimit   = 10
	SnapshotFetchLimit = 20
)

const (
	GenerationTimeout    = 60 * time.Second
	GenerationMaxRetries = 3
	GenerationRetryBase  = 500 * time.Millisecond
	DatabaseTimeout      = 5 * time.Second
	RequestTimeout       = 30 * time.Second
)

const (
	DBMaxOpenConns    = 10
	DBMaxIdleConns    = 5
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
)
