// Package database provides PostgreSQL connectivity and repositories.
//
// Uses pgx for connection pooling with inline SQL migrations run at startup.
// Repositories implement domain interfaces: UserRepository, RecordRepository.
package database
