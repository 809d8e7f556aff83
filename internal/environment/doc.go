// Package environment provides typed, default-aware access to a snapshot of
// environment variables.
//
// An [Env] never reads the process environment after construction, so the
// same Env always yields the same values. Use [FromOS] at startup and
// [FromMap] in tests.
package environment
