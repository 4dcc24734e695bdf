package middleware

import (
	"github.com/grafana/pyroscope-go"

	"github.com/rashidq/logistics-portal/config"
)

var profiler *pyroscope.Profiler

// InitProfiling starts Pyroscope continuous profiling for the portal.
func InitProfiling(cfg *config.Config) error {
	pcfg := pyroscope.Config{
		ApplicationName: cfg.Profiling.ServiceName,
		ServerAddress:   cfg.Profiling.Endpoint,
		Tags: map[string]string{
			"service": cfg.Profiling.ServiceName,
			"env":     cfg.Service.Env,
		},
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocObjects,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseObjects,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
		},
		Logger: pyroscope.StandardLogger,
	}

	var err error
	profiler, err = pyroscope.Start(pcfg)
	return err
}

// StopProfiling stops Pyroscope profiling.
func StopProfiling() {
	if profiler != nil {
		_ = profiler.Stop()
	}
}
