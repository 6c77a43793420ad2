package constants

import "time"

// Context keys
const (
	ContextTokenData = "token_data"
)

// Token scopes
const (
	ScopeTokenAccess  = "access"
	ScopeTokenRefresh = "refresh"
)

// Timeouts
const (
	DefaultTimeout        = 30 * time.Second
	DefaultRequestTimeout = 10 * time.Second
)

// Database pool settings
const (
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
	DatabaseSSLMode         = "disable"
)

// Login attempt blocking
const (
	MaxLoginAttempts = 5
	BlockDuration    = 15 * time.Minute
)

// Redis key prefixes
const (
	RedisKeyTokenBlacklist = "token:blacklist:"
	RedisKeyLoginAttempt   = "login:attempt:"
	RedisKeyFreeBusy       = "freebusy:"
)

// FreeBusyCacheTTL bounds how stale a cached provider free-busy answer may be.
const FreeBusyCacheTTL = 5 * time.Minute

// Scheduling day window. Free slots are only derived between these hours;
// this is a product policy, not user configuration.
const (
	DayWindowStartHour = 9
	DayWindowEndHour   = 21
)

// Voting
const (
	VotePreferenceMin = 1
	VotePreferenceMax = 5
)

// Asynq task types and queues
const (
	TaskCollabFinalize = "collab:finalize"
	QueueDefault       = "default"
)
