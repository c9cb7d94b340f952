package profiling

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/grafana/pyroscope-go"
	"github.com/nmm-portal/nmm-api/pkg/logger"
	"go.uber.org/zap"
)

const defaultAppName = "nmm-api"

var defaultProfileTypes = []pyroscope.ProfileType{
	pyroscope.ProfileCPU,
	pyroscope.ProfileAllocSpace,
	pyroscope.ProfileAllocObjects,
	pyroscope.ProfileGoroutines,
}

var profileTypeMap = map[string][]pyroscope.ProfileType{
	"cpu":           {pyroscope.ProfileCPU},
	"alloc_space":   {pyroscope.ProfileAllocSpace},
	"alloc_objects": {pyroscope.ProfileAllocObjects},
	"inuse_space":   {pyroscope.ProfileInuseSpace},
	"goroutines":    {pyroscope.ProfileGoroutines},
	"mutex":         {pyroscope.ProfileMutexCount, pyroscope.ProfileMutexDuration},
	"block":         {pyroscope.ProfileBlockCount, pyroscope.ProfileBlockDuration},
}

// Options configures the continuous profiler
type Options struct {
	Enabled        bool
	Endpoint       string
	AppName        string
	SampleTypes    string
	UploadInterval time.Duration
	// Labels are rendered into the application name in key order
	Labels map[string]string
}

// Start starts pyroscope when enabled and returns a stop func
func Start(opts Options) (func(), error) {
	if !opts.Enabled {
		logger.Info("Continuous profiling disabled")
		return func() {}, nil
	}

	endpoint := strings.TrimSpace(opts.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("profiling endpoint is required when profiling is enabled")
	}
	if opts.UploadInterval <= 0 {
		opts.UploadInterval = 15 * time.Second
	}

	profileTypes, err := parseProfileTypes(opts.SampleTypes)
	if err != nil {
		return nil, err
	}

	applicationName := buildApplicationName(opts.AppName, opts.Labels)

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: applicationName,
		ServerAddress:   endpoint,
		UploadRate:      opts.UploadInterval,
		ProfileTypes:    profileTypes,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start profiler: %w", err)
	}

	logger.Info("Continuous profiling initialized",
		zap.String("application_name", applicationName),
		zap.String("endpoint", endpoint),
		zap.Duration("upload_interval", opts.UploadInterval),
	)

	return func() {
		if stopErr := profiler.Stop(); stopErr != nil {
			logger.Error("Failed to stop profiler", zap.Error(stopErr))
		}
	}, nil
}

func parseProfileTypes(value string) ([]pyroscope.ProfileType, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return defaultProfileTypes, nil
	}

	var types []pyroscope.ProfileType
	seen := make(map[pyroscope.ProfileType]bool)

	for _, raw := range strings.Split(value, ",") {
		key := strings.ToLower(strings.TrimSpace(raw))
		if key == "" {
			continue
		}
		mapped, ok := profileTypeMap[key]
		if !ok {
			return nil, fmt.Errorf("unsupported O11Y_PROFILING_SAMPLE_TYPES value: %q", key)
		}
		for _, t := range mapped {
			if !seen[t] {
				types = append(types, t)
				seen[t] = true
			}
		}
	}

	if len(types) == 0 {
		return defaultProfileTypes, nil
	}
	return types, nil
}

func buildApplicationName(appName string, labels map[string]string) string {
	appName = strings.TrimSpace(appName)
	if appName == "" {
		appName = defaultAppName
	}
	if len(labels) == 0 {
		return appName
	}

	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+labels[k])
	}
	return fmt.Sprintf("%s{%s}", appName, strings.Join(parts, ","))
}
