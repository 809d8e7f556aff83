// Package crontasks defines the cron task table passed to the server
// configuration and the loader for YAML schedule files.
//
// The table is data only. Firing tasks is the job of the cron subsystem
// that consumes it.
package crontasks
