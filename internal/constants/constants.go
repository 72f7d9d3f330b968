package constants

// Centralized constants for env keys, routes and shared strings.
const (
	// Environment variable keys
	EnvAddress     = "KAYFABE_ADDRESS"
	EnvDBPath      = "KAYFABE_DB_PATH"
	EnvContentPath = "KAYFABE_CONFIG"
	EnvDebug       = "KAYFABE_DEBUG"

	// HTTP headers and content types
	HeaderContentType = "Content-Type"

	ContentTypeJSON = "application/json"
)

// Routes used by the backend router
const (
	RouteAPIPrefix    = "/api"
	RouteHealth       = "/health"
	RouteArchetypes   = "/archetypes"
	RouteMatches      = "/matches"
	RouteMatchByUUID  = "/matches/:matchUUID"
	RouteMatchLog     = "/matches/:matchUUID/log"
	RouteMatchReplay  = "/matches/:matchUUID/replay"
	RouteLeaderboard  = "/leaderboard"
	RouteWrestlerByID = "/wrestlers/:name"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyStatus  = "status"
	JSONKeyMatch   = "match"
	JSONKeyLog     = "log"
	JSONKeyMatches = "matches"
	JSONKeyVerify  = "verified"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest         = "Invalid request"
	ErrMatchNotFound          = "Match not found"
	ErrWrestlerNotFound       = "Wrestler not found"
	ErrFailedRunMatch         = "Failed to run match"
	ErrFailedFetchMatches     = "Failed to fetch matches"
	ErrFailedFetchMatchLog    = "Failed to fetch match log"
	ErrFailedFetchLeaderboard = "Failed to fetch leaderboard"
	ErrFailedReplayMatch      = "Failed to replay match"
	ErrUnknownArchetype       = "Unknown archetype"
	ErrWrestlerNameRequired   = "Both wrestler names are required"
)

// Logging field names
const (
	LogFieldMatchUUID = "match_uuid"
	LogFieldSeed      = "seed"
	LogFieldWinner    = "winner"
	LogFieldMethod    = "method"
	LogFieldTicks     = "ticks"
	LogFieldName      = "name"
	LogFieldAddr      = "addr"
	LogFieldPath      = "path"
)
