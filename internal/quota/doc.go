// Package quota computes how many nominations and votes a user has left
// this calendar month.
//
// The Counter is a read-through layer over a QuotaCache: cache hit wins,
// cache miss recomputes from the record store and repopulates with a TTL.
// Record creation invalidates exactly the affected (kind, user) entry, so a
// stale value can live at most one TTL even if an invalidation is lost.
package quota
