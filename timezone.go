package ics

import (
	"log/slog"
	"sync"
	"time"
)

// TimeZoneProvider resolves TZID text into a location. Implementations must
// be safe for concurrent use and never return nil.
type TimeZoneProvider interface {
	TimeZone(identifier string) *time.Location
}

// LocationCache loads locations from the system time zone database and keeps
// them. Unknown identifiers resolve to UTC.
type LocationCache struct {
	logger    *slog.Logger
	locations sync.Map
}

// NewLocationCache returns an empty cache. A nil logger logs to slog.Default.
func NewLocationCache(logger *slog.Logger) *LocationCache {
	return &LocationCache{logger: logger}
}

func (lc *LocationCache) TimeZone(identifier string) *time.Location {
	if identifier == "" {
		return time.UTC
	}
	if loc, ok := lc.locations.Load(identifier); ok {
		return loc.(*time.Location)
	}
	loc, err := time.LoadLocation(identifier)
	if err != nil {
		loggerOrDefault(lc.logger).Warn("unknown time zone, using UTC", "tzid", identifier, "error", err)
		loc = time.UTC
	}
	actual, _ := lc.locations.LoadOrStore(identifier, loc)
	return actual.(*time.Location)
}

var defaultTimeZoneProvider = NewLocationCache(nil)

func isUTC(loc *time.Location) bool {
	if loc == nil || loc == time.UTC {
		return true
	}
	switch loc.String() {
	case "UTC", "GMT", "Etc/UTC", "Etc/GMT", "Z":
		return true
	}
	return false
}

func loggerOrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}
