//go:build !rummydebug

package internal

const debugChecks = false
