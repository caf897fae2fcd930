package config

import (
	"testing"
)

func TestDefaultOptions(t *testing.T) {
	opts := GetDefaultOptions()

	if opts.Port != defaultPort {
		t.Errorf("Port not set")
	}
	if opts.PageSize != defaultPageSize {
		t.Errorf("PageSize not set")
	}
	if opts.MaxPageSize != defaultMaxPageSize {
		t.Errorf("MaxPageSize not set")
	}
	if opts.WorkerPoolSize != defaultWorkerPoolSize {
		t.Errorf("WorkerPoolSize not set")
	}
}

func TestLoadConfigFile(t *testing.T) {
	GetDefaultOptions()
	opts, err := ParseFile("config_test.toml")
	if err != nil {
		t.Errorf("Error loading config: %s", err)
	}
	t.Logf(`Config
		Host: %s
		Port: %d
		LogLevel: %s
		LogFile: %s
		`, opts.Host, opts.Port, opts.LogLevel, opts.LogFile)
	if opts.Host != "127.0.0.1" {
		t.Errorf("Host not set")
	}
	if opts.Port != 2333 {
		t.Errorf("Port not set")
	}
	if opts.LogFile != "test.log" {
		t.Errorf("LogFile not set")
	}
	if opts.LogLevel != "debug" {
		t.Errorf("LogLevel not set")
	}
	if opts.PageSize != 10 {
		t.Errorf("PageSize not set")
	}
	// Values absent from the file keep their defaults.
	if opts.MaxPageSize != defaultMaxPageSize {
		t.Errorf("MaxPageSize lost its default")
	}
}
