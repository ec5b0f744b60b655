// Copyright (c) 2026 Maison. All rights reserved.
// Author: platform@maison.shop

/*
Package constants provides centralized, immutable values for the platform.

It defines default timeouts, rate limits, and cross-cutting keys shared
between layers, keeping magic strings and numbers out of business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "maison-api"
	AppVersion = "0.2.0"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	// Expiry surfaces as a denial, never as an implicit allow.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests during shutdown.
	ShutdownTimeout = 30 * time.Second

	// DirectoryLookupTimeout bounds a single role/metadata lookup performed
	// while resolving an actor.
	DirectoryLookupTimeout = 3 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in JWTs.
	AuthIssuer = "maison.shop"

	// AccessTokenTTL is how long an issued access token remains valid.
	AccessTokenTTL = 15 * time.Minute
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # JSON Field Identifiers

const (
	FieldSuccess     = "success"
	FieldData        = "data"
	FieldError       = "error"
	FieldCode        = "code"
	FieldDetails     = "details"
	FieldEnvironment = "environment"
	FieldStatus      = "status"
	FieldChecks      = "checks"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	// RedisPrefixRoleClaim caches the directory role per identity, mirroring
	// the identity provider's custom-claim mechanism.
	RedisPrefixRoleClaim = "auth:role_claim:"
)

// # Cache TTLs

const (
	// RoleClaimTTL bounds how stale a cached role claim may get before the
	// authenticator falls back to the directory store.
	RoleClaimTTL = 5 * time.Minute
)
