package ics

import (
	"log/slog"
	"time"
)

const (
	DefaultICalVersion = "2.0"
	DefaultCalscale    = "GREGORIAN"
	DefaultProductName = "Proton Calendar"
)

// BuildResult classifies the outcome of a VEventWriter.Build call.
type BuildResult string

const (
	BuildResultBuilt BuildResult = "built"
	BuildResultEmpty BuildResult = "empty"
	BuildResultError BuildResult = "error"
)

// BuildObserver is notified once per Build call.
type BuildObserver interface {
	ObserveBuild(bt BuildType, result BuildResult)
}

type writerOptions struct {
	iCalVersion string
	calscale    string
	productName string
	timestamp   func() time.Time
	timeZones   TimeZoneProvider
	logger      *slog.Logger
	observer    BuildObserver
}

// Option configures a VCalendarWriter or a VEventWriter. Options that only
// concern the envelope are ignored by VEventWriter.
type Option func(*writerOptions)

func defaultWriterOptions() writerOptions {
	return writerOptions{
		iCalVersion: DefaultICalVersion,
		calscale:    DefaultCalscale,
		productName: DefaultProductName,
		timestamp:   time.Now,
		timeZones:   defaultTimeZoneProvider,
	}
}

func newWriterOptions(opts []Option) writerOptions {
	o := defaultWriterOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func WithICalVersion(v string) Option {
	return func(o *writerOptions) {
		o.iCalVersion = v
	}
}

func WithCalscale(v string) Option {
	return func(o *writerOptions) {
		o.calscale = v
	}
}

// WithProductName sets the product segment of PRODID.
func WithProductName(name string) Option {
	return func(o *writerOptions) {
		o.productName = name
	}
}

// WithTimestamp replaces time.Now as the source of DTSTAMP and LAST-MODIFIED.
func WithTimestamp(now func() time.Time) Option {
	return func(o *writerOptions) {
		if now != nil {
			o.timestamp = now
		}
	}
}

func WithTimeZoneProvider(p TimeZoneProvider) Option {
	return func(o *writerOptions) {
		if p != nil {
			o.timeZones = p
		}
	}
}

// WithLogger sets the logger for diagnostics. Without it slog.Default is used.
func WithLogger(l *slog.Logger) Option {
	return func(o *writerOptions) {
		o.logger = l
	}
}

func WithObserver(observer BuildObserver) Option {
	return func(o *writerOptions) {
		o.observer = observer
	}
}
