package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	ics "github.com/pmcal/golang-ical"
)

const buildsName = "icswriter_vevent_builds_total"

// BuildCounter counts VEVENT builds by build type and result. It is an
// ics.BuildObserver.
type BuildCounter struct {
	builds *prometheus.CounterVec
}

var _ ics.BuildObserver = (*BuildCounter)(nil)

// NewBuildCounter registers the counter with reg. A counter registered
// earlier under the same name is reused.
func NewBuildCounter(reg prometheus.Registerer) (*BuildCounter, error) {
	builds := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: buildsName,
		Help: "The number of partial VEVENT builds by build type and result",
	}, []string{"build_type", "result"})
	if err := reg.Register(builds); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, fmt.Errorf("register %s: %w", buildsName, err)
		}
		existing, ok := are.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return nil, fmt.Errorf("register %s: %w", buildsName, err)
		}
		builds = existing
	}
	return &BuildCounter{builds: builds}, nil
}

func (c *BuildCounter) ObserveBuild(bt ics.BuildType, result ics.BuildResult) {
	c.builds.WithLabelValues(bt.String(), string(result)).Inc()
}

// Collector exposes the underlying counter, mostly for tests.
func (c *BuildCounter) Collector() *prometheus.CounterVec {
	return c.builds
}

// WriteTextfile dumps everything g gathers to path in the text exposition
// format, for node_exporter's textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics to %s: %w", path, err)
	}
	return nil
}
