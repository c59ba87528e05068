// Package logger is a standardized event logging framework for the shell.
//
// Events are written as newline delimited JSON objects, one per line, with
// exactly one event field set per entry.
package logger
