// Package redis implements the Redis-backed quota cache.
//
// Cache entries map (record kind, user) to a precomputed remaining-quota
// value with a TTL. Only set-on-miss and delete-on-create mutations exist,
// so the cache survives multi-process deployments without coordination.
package redis
