//go:build rummydebug

package internal

const debugChecks = true
