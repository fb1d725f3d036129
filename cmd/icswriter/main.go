package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	ics "github.com/pmcal/golang-ical"
	"github.com/pmcal/golang-ical/internal/config"
	"github.com/pmcal/golang-ical/internal/eventfile"
	"github.com/pmcal/golang-ical/internal/logging"
	"github.com/pmcal/golang-ical/internal/metrics"
)

type flagConfig struct {
	configPath  string
	eventPath   string
	types       string
	sessionKey  string
	method      string
	vtimezone   string
	metricsFile string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func parseFlags(args []string, stderr io.Writer) (flagConfig, error) {
	var f flagConfig
	fs := flag.NewFlagSet("icswriter", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.configPath, "config", "icswriter.yaml", "path to the YAML config, created with defaults when missing")
	fs.StringVar(&f.eventPath, "event", "", "path to the YAML event description")
	fs.StringVar(&f.types, "type", "all-parts", "comma separated build types: all-parts, shared-signed, shared-encrypted, calendar-signed, attendees-encrypted, reply, invite, cancel")
	fs.StringVar(&f.sessionKey, "session-key", "", "base64 shared session key for invite builds")
	fs.StringVar(&f.method, "method", "", "METHOD of the calendars, e.g. REQUEST")
	fs.StringVar(&f.vtimezone, "vtimezone", "", "file holding a VTIMEZONE block to include")
	fs.StringVar(&f.metricsFile, "metrics-file", "", "write build metrics to this file in the Prometheus text format")
	if err := fs.Parse(args); err != nil {
		return f, err
	}
	if f.eventPath == "" {
		return f, errors.New("-event is required")
	}
	return f, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	flags, err := parseFlags(args, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(stderr, err)
	}
	conf, err := config.Load(flags.configPath)
	if err != nil {
		fmt.Fprintln(stderr, "failed to load config:", err)
		return 1
	}
	conf.ApplyEnv()
	logger := logging.Setup(stderr, conf.Level(), conf.NoColor)
	logger.Debug("effective config",
		"product", conf.ProductName,
		"version", conf.ProductVersion,
		"timezone", conf.Timezone,
		"week_start", conf.WeekStart,
		"newline", conf.NewLine,
	)

	if _, err := conf.Location(); err != nil {
		logger.Error("invalid config", "path", flags.configPath, "error", err)
		return 1
	}

	buildTypes, err := parseBuildTypes(flags.types, flags.sessionKey)
	if err != nil {
		logger.Error("invalid build type", "error", err)
		return 2
	}

	file, err := eventfile.Load(flags.eventPath)
	if err != nil {
		logger.Error("can't read event", "path", flags.eventPath, "error", err)
		return 1
	}
	event, err := file.Event(conf.Timezone, conf.WeekStartDay())
	if err != nil {
		logger.Error("invalid event", "path", flags.eventPath, "error", err)
		return 1
	}

	var vtimezone string
	if flags.vtimezone != "" {
		data, err := os.ReadFile(flags.vtimezone)
		if err != nil {
			logger.Error("can't read vtimezone", "path", flags.vtimezone, "error", err)
			return 1
		}
		vtimezone = string(data)
	}

	reg := prometheus.NewRegistry()
	counter, err := metrics.NewBuildCounter(reg)
	if err != nil {
		logger.Error("can't register metrics", "error", err)
		return 1
	}

	code := 0
	for _, bt := range buildTypes {
		w := ics.NewVCalendarWriter(conf.ProductVersion,
			ics.WithProductName(conf.ProductName),
			ics.WithICalVersion(conf.ICalVersion),
			ics.WithCalscale(conf.Calscale),
			ics.WithLogger(logger),
			ics.WithObserver(counter),
		)
		w.AddProdID().AddVersion().AddCalscale()
		if flags.method != "" {
			w.AddMethod(ics.Method(strings.ToUpper(flags.method)))
		}
		if vtimezone != "" {
			if err := w.AddVTimezone(vtimezone); err != nil {
				logger.Error("invalid vtimezone", "path", flags.vtimezone, "error", err)
				return 1
			}
		}
		added, err := w.AddVEvent(event, bt)
		if err != nil {
			var we *ics.WriteError
			if errors.As(err, &we) {
				logger.Error("build failed", "build_type", bt, "property", we.Property, "error", we.Err)
			} else {
				logger.Error("build failed", "build_type", bt, "error", err)
			}
			code = 1
			continue
		}
		if !added {
			logger.Info("nothing to write", "build_type", bt)
			continue
		}
		if err := w.Calendar().SerializeTo(stdout, ics.WithNewLine(conf.LineEnding())); err != nil {
			logger.Error("can't write calendar", "build_type", bt, "error", err)
			return 1
		}
		w.Calendar().Release()
	}

	if flags.metricsFile != "" {
		if err := metrics.WriteTextfile(flags.metricsFile, reg); err != nil {
			logger.Error("can't write metrics", "error", err)
			return 1
		}
	}
	return code
}

func parseBuildTypes(list, sessionKey string) ([]ics.BuildType, error) {
	var r []ics.BuildType
	for _, name := range strings.Split(list, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		bt, err := ics.ParseBuildType(name, sessionKey)
		if err != nil {
			return nil, err
		}
		if bt.Kind == ics.BuildKindInvite && sessionKey == "" {
			return nil, errors.New("invite needs -session-key")
		}
		r = append(r, bt)
	}
	if len(r) == 0 {
		return nil, errors.New("no build type given")
	}
	return r, nil
}
