// Package constants contains application-wide constants to avoid magic numbers and strings.
package constants

import "time"

// Application defaults
const (
	DefaultPort            = "5000"
	DefaultDBDriver        = "sqlite"
	DefaultDBPath          = "catalog.db"
	DefaultStaticDir       = "static"
	DefaultMaxUploadMB     = 100
	DefaultBcryptCost      = 10
	DefaultAuthRateLimit   = 5.0
	DefaultAuthRateBurst   = 10
	RateLimitIdleTTL       = 10 * time.Minute
	DefaultShutdownTimeout = 5 * time.Second
	ReadHeaderTimeout      = 10 * time.Second
	DefaultBusyTimeout     = 30000
)

// Postgres defaults
const (
	DefaultPostgresHost     = "localhost"
	DefaultPostgresPort     = "5432"
	DefaultPostgresUser     = "postgres"
	DefaultPostgresPassword = "postgres"
	DefaultPostgresDB       = "music-stream"
)

// Database drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Pagination
const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
	TopTracksLimit   = 10
)

// Release type titles, seeded at startup
const (
	ReleaseTypeSingle = "Single"
	ReleaseTypeEP     = "EP"
	ReleaseTypeAlbum  = "Album"
)

// Track count thresholds for release classification
const (
	SingleMaxTracks = 1
	EPMaxTracks     = 4
)

// Role titles, seeded at startup
const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// Storage buckets
const (
	BucketImage = "image"
	BucketAudio = "audio"
)

// File Extensions
const (
	ExtFLAC = ".flac"
	ExtMP3  = ".mp3"
	ExtM4A  = ".m4a"
	ExtOGG  = ".ogg"
	ExtWAV  = ".wav"
	ExtAAC  = ".aac"
	ExtJPG  = ".jpg"
	ExtJPEG = ".jpeg"
	ExtPNG  = ".png"
	ExtWEBP = ".webp"
	ExtGIF  = ".gif"
)

// File Permissions
const (
	DirPermissions  = 0755
	FilePermissions = 0644
)

// Characters to sanitize from filesystem paths
const InvalidPathChars = "<>:\"/\\|?*"
