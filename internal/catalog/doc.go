// Package catalog implements the pluggable snack source clients.
//
// APISource talks to the external Snack Food API over HTTP; StaticSource is
// an in-memory stand-in for development and tests. New resolves the
// configured source identifier to a concrete client at startup.
package catalog
