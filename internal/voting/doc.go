// Package voting joins the external snack catalog with local nomination and
// ballot records.
//
// pipeline.go holds the pure aggregation functions; service.go orchestrates
// the request flows (quota check, catalog call, record creation, cache
// invalidation) on top of them.
package voting
