// Package snapshot keeps the current server configuration and replaces it on
// reload.
//
// Each snapshot is built fresh by a [Loader] and never modified; a reload
// swaps the pointer and notifies [Subscriber]s only when the configuration
// actually changed.
package snapshot
