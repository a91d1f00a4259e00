package config

import (
	"io"
	"time"
)

// TimeConfig defines helpers for retrieving time-based configuration values.
type TimeConfig interface {
	// GetMillisecond retrieves the value of key as a number of milliseconds.
	GetMillisecond(key string) time.Duration

	// GetSecond retrieves the value of key as a number of seconds.
	GetSecond(key string) time.Duration
}

// Config defines a set of methods for retrieving configuration values of various types.
// Missing keys and values that cannot be converted yield the zero value of
// the requested type unless a default is registered for the key.
type Config interface {
	io.Closer
	TimeConfig

	GetBool(key string) bool
	GetString(key string) string
	GetInt(key string) int
	GetUint(key string) uint
	GetFloat64(key string) float64

	// GetArray retrieves the value of key as a slice of strings.
	// Configuration value is stored with format <element1>,<element2>,...
	// An empty value yields an empty slice.
	GetArray(key string) []string
}
