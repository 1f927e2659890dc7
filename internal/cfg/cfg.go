// Package cfg loads pipeline configuration from a YAML file or environment
// variables. A YAML file named by CONFIG_FILE wins; individual environment
// variables override its values.
package cfg

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Settings struct {
	// Dataset source: a local CSV, a remote CSV, or the example set
	// previously ingested into the store. At least one must be set.
	DataPath string
	DataURL  string

	StorePath   string
	OutputPath  string
	HTTPTimeout time.Duration

	Folds       int
	Seed        int64
	CutoffCount int

	KNNNeighbors int
	TreeMaxDepth int
	TreeMinLeaf  int

	MetricsPort int
}

type ConfigFile struct {
	Dataset struct {
		Path        string `yaml:"path"`
		URL         string `yaml:"url"`
		HTTPTimeout string `yaml:"httpTimeout"`
	} `yaml:"dataset"`

	Evaluation struct {
		Folds       int   `yaml:"folds"`
		Seed        int64 `yaml:"seed"`
		CutoffCount int   `yaml:"cutoffCount"`
	} `yaml:"evaluation"`

	Classifiers struct {
		KNNNeighbors int `yaml:"knnNeighbors"`
		TreeMaxDepth int `yaml:"treeMaxDepth"`
		TreeMinLeaf  int `yaml:"treeMinLeaf"`
	} `yaml:"classifiers"`

	System struct {
		StorePath   string `yaml:"storePath"`
		OutputPath  string `yaml:"outputPath"`
		MetricsPort int    `yaml:"metricsPort"`
	} `yaml:"system"`
}

func Load() (Settings, error) {
	// Try to load from YAML file first
	if configPath := os.Getenv("CONFIG_FILE"); configPath != "" {
		return loadFromYAML(configPath)
	}

	// Fallback to environment variables
	return loadFromEnv()
}

func loadFromYAML(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Settings{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	httpTimeout, err := time.ParseDuration(config.Dataset.HTTPTimeout)
	if err != nil {
		httpTimeout = 30 * time.Second
	}

	settings := Settings{
		DataPath:     getEnvOrDefault("DATA_PATH", config.Dataset.Path),
		DataURL:      getEnvOrDefault("DATA_URL", config.Dataset.URL),
		StorePath:    getEnvOrDefault("STORE_PATH", config.System.StorePath),
		OutputPath:   getEnvOrDefault("OUTPUT_PATH", defaultString(config.System.OutputPath, "results")),
		HTTPTimeout:  getDurationOrDefault("HTTP_TIMEOUT", httpTimeout),
		Folds:        getIntOrDefault("FOLDS", defaultInt(config.Evaluation.Folds, 10)),
		Seed:         getInt64OrDefault("SEED", defaultInt64(config.Evaluation.Seed, 42)),
		CutoffCount:  getIntOrDefault("CUTOFF_COUNT", defaultInt(config.Evaluation.CutoffCount, 11)),
		KNNNeighbors: getIntOrDefault("KNN_NEIGHBORS", defaultInt(config.Classifiers.KNNNeighbors, 5)),
		TreeMaxDepth: getIntOrDefault("TREE_MAX_DEPTH", defaultInt(config.Classifiers.TreeMaxDepth, 8)),
		TreeMinLeaf:  getIntOrDefault("TREE_MIN_LEAF", defaultInt(config.Classifiers.TreeMinLeaf, 5)),
		MetricsPort:  getIntOrDefault("METRICS_PORT", defaultInt(config.System.MetricsPort, 8080)),
	}

	// Validate configuration
	if err := validateSettings(&settings); err != nil {
		return Settings{}, fmt.Errorf("configuration validation failed: %w", err)
	}

	return settings, nil
}

func loadFromEnv() (Settings, error) {
	settings := Settings{
		DataPath:     os.Getenv("DATA_PATH"),
		DataURL:      os.Getenv("DATA_URL"),
		StorePath:    os.Getenv("STORE_PATH"),
		OutputPath:   getEnvOrDefault("OUTPUT_PATH", "results"),
		HTTPTimeout:  getDurationOrDefault("HTTP_TIMEOUT", 30*time.Second),
		Folds:        getIntOrDefault("FOLDS", 10),
		Seed:         getInt64OrDefault("SEED", 42),
		CutoffCount:  getIntOrDefault("CUTOFF_COUNT", 11),
		KNNNeighbors: getIntOrDefault("KNN_NEIGHBORS", 5),
		TreeMaxDepth: getIntOrDefault("TREE_MAX_DEPTH", 8),
		TreeMinLeaf:  getIntOrDefault("TREE_MIN_LEAF", 5),
		MetricsPort:  getIntOrDefault("METRICS_PORT", 8080),
	}

	// Validate configuration
	if err := validateSettings(&settings); err != nil {
		return Settings{}, fmt.Errorf("configuration validation failed: %w", err)
	}

	return settings, nil
}

func validateSettings(settings *Settings) error {
	// Validate dataset source
	if settings.DataPath == "" && settings.DataURL == "" && settings.StorePath == "" {
		return fmt.Errorf("a dataset source is required: set DATA_PATH, DATA_URL, or STORE_PATH")
	}
	if settings.OutputPath == "" {
		return fmt.Errorf("output path cannot be empty")
	}

	// Validate evaluation parameters
	if settings.Folds < 2 || settings.Folds > 100 {
		return fmt.Errorf("fold count must be between 2 and 100, got %d", settings.Folds)
	}
	if settings.CutoffCount < 2 || settings.CutoffCount > 1001 {
		return fmt.Errorf("cutoff count must be between 2 and 1001, got %d", settings.CutoffCount)
	}

	// Validate classifier parameters
	if settings.KNNNeighbors < 1 || settings.KNNNeighbors > 1000 {
		return fmt.Errorf("KNN neighbor count must be between 1 and 1000, got %d", settings.KNNNeighbors)
	}
	if settings.TreeMaxDepth < 1 || settings.TreeMaxDepth > 64 {
		return fmt.Errorf("tree max depth must be between 1 and 64, got %d", settings.TreeMaxDepth)
	}
	if settings.TreeMinLeaf < 1 || settings.TreeMinLeaf > 1000 {
		return fmt.Errorf("tree min leaf size must be between 1 and 1000, got %d", settings.TreeMinLeaf)
	}

	// Validate system parameters
	if settings.MetricsPort < 1024 || settings.MetricsPort > 65535 {
		return fmt.Errorf("metrics port must be between 1024 and 65535, got %d", settings.MetricsPort)
	}
	if settings.HTTPTimeout < time.Second || settings.HTTPTimeout > 5*time.Minute {
		return fmt.Errorf("HTTP timeout must be between 1s and 5m, got %v", settings.HTTPTimeout)
	}

	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func getInt64OrDefault(key string, defaultValue int64) int64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return defaultValue
}

func defaultString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func defaultInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func defaultInt64(v, def int64) int64 {
	if v == 0 {
		return def
	}
	return v
}
