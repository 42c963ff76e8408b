package config

import (
	"github.com/spf13/viper"
)

const (
	defaultLogFile           = "book-faker.log"
	defaultLogLevel          = "info"
	defaultLogFileMaxSize    = 20
	defaultLogFileMaxBackups = 3
	defaultLogFileMaxAge     = 28
	defaultLogCompress       = false
	defaultPort              = 8080
	defaultHost              = "0.0.0.0"
	defaultShutdownTimeout   = 10
	defaultExportDir         = "exports"
	defaultMaxExportPages    = 50
	defaultWorkerPoolSize    = 4
	defaultMaxAverage        = 100
	defaultRateLimitRPS      = 20
	defaultRateLimitBurst    = 40
	defaultCacheSize         = 512
	defaultCacheTTL          = 3600
	defaultRedisURL          = ""
	defaultLocale            = "en"
	defaultSeed              = 42
	defaultLikes             = 1.0
	defaultReviews           = 1.0
)

var defaultExportFormats = []string{"json", "csv", "epub"}

// Why use mapstructure instead of json: viper decodes through mapstructure, so json tags are ignored.
// see: https://pkg.go.dev/github.com/mitchellh/mapstructure#hdr-Field_Tags
type Options struct {
	// LogFile is the file to write logs to
	LogFile string `mapstructure:"log_file"`
	// LogLevel is the level of logging to show
	LogLevel string `mapstructure:"log_level"`
	// LogFileMaxSize is the maximum size of the log file before it is rotated
	LogFileMaxSize int `mapstructure:"log_file_max_size"`
	// LogFileMaxBackups is the maximum number of log files to keep
	LogFileMaxBackups int `mapstructure:"log_file_max_backups"`
	// LogFileMaxAge is the maximum number of days to keep a log file
	LogFileMaxAge int `mapstructure:"log_file_max_age"`
	// LogCompress is whether or not to compress the log files
	LogCompress bool `mapstructure:"log_compress"`
	// Port is the port to listen on
	Port int `mapstructure:"port"`
	// Host is the host to listen on
	Host string `mapstructure:"host"`
	// ShutdownTimeout is how long in-flight requests get on shutdown, in seconds
	ShutdownTimeout int `mapstructure:"shutdown_timeout"`
	// ExportDir is where the CLI saves exported catalogs
	ExportDir     string   `mapstructure:"export_dir"`
	ExportFormats []string `mapstructure:"export_formats"`
	// MaxExportPages caps the pages of a single export
	MaxExportPages int `mapstructure:"max_export_pages"`
	WorkerPoolSize int `mapstructure:"worker_pool_size"`
	// MaxAverage caps the reviews average a client may ask for
	MaxAverage float64 `mapstructure:"max_average"`
	// For rate limiting, per client
	RateLimitRPS   float64 `mapstructure:"rate_limit_rps"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
	// CacheSize is the number of pages kept in memory, 0 disables it
	CacheSize int `mapstructure:"cache_size"`
	// CacheTTL is the lifetime of a page in redis, in seconds
	CacheTTL int `mapstructure:"cache_ttl"`
	// RedisURL enables the shared page cache when set
	RedisURL string `mapstructure:"redis_url"`
	// Used when a query parameter is omitted
	DefaultLocale  string  `mapstructure:"default_locale"`
	DefaultSeed    int64   `mapstructure:"default_seed"`
	DefaultLikes   float64 `mapstructure:"default_likes"`
	DefaultReviews float64 `mapstructure:"default_reviews"`
}

func GetDefaultOptions() *Options {
	Opts = &Options{
		LogFile:           defaultLogFile,
		LogLevel:          defaultLogLevel,
		LogFileMaxSize:    defaultLogFileMaxSize,
		LogFileMaxBackups: defaultLogFileMaxBackups,
		LogFileMaxAge:     defaultLogFileMaxAge,
		LogCompress:       defaultLogCompress,
		Port:              defaultPort,
		Host:              defaultHost,
		ShutdownTimeout:   defaultShutdownTimeout,
		ExportDir:         defaultExportDir,
		ExportFormats:     append([]string(nil), defaultExportFormats...),
		MaxExportPages:    defaultMaxExportPages,
		WorkerPoolSize:    defaultWorkerPoolSize,
		MaxAverage:        defaultMaxAverage,
		RateLimitRPS:      defaultRateLimitRPS,
		RateLimitBurst:    defaultRateLimitBurst,
		CacheSize:         defaultCacheSize,
		CacheTTL:          defaultCacheTTL,
		RedisURL:          defaultRedisURL,
		DefaultLocale:     defaultLocale,
		DefaultSeed:       defaultSeed,
		DefaultLikes:      defaultLikes,
		DefaultReviews:    defaultReviews,
	}
	return Opts
}

// setDefaults registers every option with viper, otherwise AutomaticEnv
// does not reach Unmarshal for keys missing from the config file.
func setDefaults(v *viper.Viper, opts *Options) {
	v.SetDefault("log_file", opts.LogFile)
	v.SetDefault("log_level", opts.LogLevel)
	v.SetDefault("log_file_max_size", opts.LogFileMaxSize)
	v.SetDefault("log_file_max_backups", opts.LogFileMaxBackups)
	v.SetDefault("log_file_max_age", opts.LogFileMaxAge)
	v.SetDefault("log_compress", opts.LogCompress)
	v.SetDefault("port", opts.Port)
	v.SetDefault("host", opts.Host)
	v.SetDefault("shutdown_timeout", opts.ShutdownTimeout)
	v.SetDefault("export_dir", opts.ExportDir)
	v.SetDefault("export_formats", opts.ExportFormats)
	v.SetDefault("max_export_pages", opts.MaxExportPages)
	v.SetDefault("worker_pool_size", opts.WorkerPoolSize)
	v.SetDefault("max_average", opts.MaxAverage)
	v.SetDefault("rate_limit_rps", opts.RateLimitRPS)
	v.SetDefault("rate_limit_burst", opts.RateLimitBurst)
	v.SetDefault("cache_size", opts.CacheSize)
	v.SetDefault("cache_ttl", opts.CacheTTL)
	v.SetDefault("redis_url", opts.RedisURL)
	v.SetDefault("default_locale", opts.DefaultLocale)
	v.SetDefault("default_seed", opts.DefaultSeed)
	v.SetDefault("default_likes", opts.DefaultLikes)
	v.SetDefault("default_reviews", opts.DefaultReviews)
}
