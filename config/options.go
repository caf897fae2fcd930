package config

const (
	defaultLogFile           = "bookcritic.log"
	defaultLogLevel          = "info"
	defaultLogFileMaxSize    = 20
	defaultLogFileMaxBackups = 3
	defaultLogFileMaxAge     = 28
	defaultLogCompress       = false
	defaultPort              = 8080
	defaultHost              = "0.0.0.0"
	defaultData              = "/var/opt/bookcritic"
	defaultWorkerPoolSize    = 4
	defaultPageSize          = 20
	defaultMaxPageSize       = 100
	defaultMetricsCollector  = true
)

var Opts *Options

// Viper unmarshals through mapstructure, so the field tags here are
// mapstructure tags, not json.
type Options struct {
	// LogFile is the file to write logs to
	LogFile string `mapstructure:"log_file"`
	// LogLevel is the level of logging to show
	LogLevel string `mapstructure:"log_level"`
	// LogFileMaxSize is the maximum size of the log file before it is rotated, in MiB
	LogFileMaxSize int `mapstructure:"log_file_max_size"`
	// LogFileMaxBackups is the maximum number of log files to keep
	LogFileMaxBackups int `mapstructure:"log_file_max_backups"`
	// LogFileMaxAge is the maximum number of days to keep a log file
	LogFileMaxAge int `mapstructure:"log_file_max_age"`
	// LogCompress is whether or not to compress the log files
	LogCompress bool `mapstructure:"log_compress"`
	// DSN is the path of the sqlite database
	DSN string `mapstructure:"dsn_uri"`
	// Port is the port to listen on
	Port int `mapstructure:"port"`
	// Host is the host to listen on
	Host string `mapstructure:"host"`
	// Data is the directory to store data
	Data string `mapstructure:"data"`
	// WorkerPoolSize is the number of rating aggregation workers
	WorkerPoolSize int `mapstructure:"worker_pool_size"`
	// PageSize is the page size used when a list request gives no take parameter
	PageSize int `mapstructure:"page_size"`
	// MaxPageSize caps the take parameter of list requests
	MaxPageSize int `mapstructure:"max_page_size"`
	// MetricsCollector enables the request metrics collector
	MetricsCollector bool `mapstructure:"metrics_collector"`
}

func GetDefaultOptions() *Options {
	Opts = &Options{
		LogFile:           defaultLogFile,
		LogLevel:          defaultLogLevel,
		LogFileMaxSize:    defaultLogFileMaxSize,
		LogFileMaxBackups: defaultLogFileMaxBackups,
		LogFileMaxAge:     defaultLogFileMaxAge,
		LogCompress:       defaultLogCompress,
		DSN:               defaultData + "/bookcritic.db",
		Port:              defaultPort,
		Host:              defaultHost,
		Data:              defaultData,
		WorkerPoolSize:    defaultWorkerPoolSize,
		PageSize:          defaultPageSize,
		MaxPageSize:       defaultMaxPageSize,
		MetricsCollector:  defaultMetricsCollector,
	}
	return Opts
}
