// Package config exposes typed, read-only access to service configuration.
//
// Values come from a YAML file and can be overridden from the environment
// (see EnvPrefix). Callers read values at use time, so a reloaded file is
// picked up without restarting.
package config

import (
	"io"
	"time"
)

// TimeConfig reads integer values and scales them to a duration unit.
type TimeConfig interface {
	GetMillisecond(key string) time.Duration
	GetSecond(key string) time.Duration
	GetMinute(key string) time.Duration
	GetHour(key string) time.Duration
	GetDay(key string) time.Duration
}

// SignedIntConfig reads signed integers; missing keys yield zero.
type SignedIntConfig interface {
	GetInt(key string) int
	GetInt32(key string) int32
	GetInt64(key string) int64
}

// UnsignedIntConfig reads unsigned integers; missing keys yield zero.
type UnsignedIntConfig interface {
	GetUint(key string) uint
	GetUint16(key string) uint16
	GetUint32(key string) uint32
	GetUint64(key string) uint64
}

// FloatConfig reads floating-point values.
type FloatConfig interface {
	GetFloat32(key string) float32
	GetFloat64(key string) float64
}

// Config is the full configuration surface used across the service.
type Config interface {
	io.Closer
	TimeConfig
	SignedIntConfig
	UnsignedIntConfig
	FloatConfig

	GetBool(key string) bool
	GetString(key string) string

	// GetBinary decodes a base64 value; invalid input yields nil.
	GetBinary(key string) []byte

	// GetArray reads a YAML list or a comma separated string.
	GetArray(key string) []string

	// GetMap reads "k1:v1,k2:v2".
	GetMap(key string) map[string]string
}
