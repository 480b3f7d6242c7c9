package common

import (
	"flag"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"vincit.fi/collector/common/constants"
)

// environment holds the defaults read from COLLECTOR_* variables. Command
// line flags override them.
type environment struct {
	ApiUrl         string        `env:"COLLECTOR_API_URL"`
	StorageBase    string        `env:"COLLECTOR_STORAGE_BASE"`
	DbDir          string        `env:"COLLECTOR_DB_DIR"`
	LogLevel       string        `env:"COLLECTOR_LOG_LEVEL" envDefault:"INFO"`
	HttpTimeout    time.Duration `env:"COLLECTOR_HTTP_TIMEOUT" envDefault:"0s"`
	SearchDebounce time.Duration `env:"COLLECTOR_SEARCH_DEBOUNCE" envDefault:"500ms"`
}

type Params struct {
	apiUrl         string
	storageBase    string
	dbDir          string
	logLevel       string
	httpTimeout    time.Duration
	searchDebounce time.Duration
	initialRoute   string
}

func NewEmptyParams() *Params {
	return &Params{
		apiUrl:         constants.DefaultApiUrl,
		storageBase:    constants.DefaultStorageBase,
		dbDir:          "",
		logLevel:       "INFO",
		httpTimeout:    0,
		searchDebounce: constants.DefaultSearchDebounce,
		initialRoute:   "/",
	}
}

func ParseParams() (*Params, error) {
	return parseParams(flag.CommandLine, os.Args[1:], nil)
}

// parseParams reads the environment (or the given map when not nil) and then
// the flags.
func parseParams(flags *flag.FlagSet, args []string, environ map[string]string) (*Params, error) {
	envConfig := environment{}
	options := env.Options{}
	if environ != nil {
		options.Environment = environ
	}
	if err := env.ParseWithOptions(&envConfig, options); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if envConfig.ApiUrl == "" {
		envConfig.ApiUrl = constants.DefaultApiUrl
	}
	if envConfig.StorageBase == "" {
		envConfig.StorageBase = constants.DefaultStorageBase
	}
	if envConfig.DbDir == "" {
		envConfig.DbDir = defaultDbDir()
	}

	apiUrl := flags.String("apiUrl", envConfig.ApiUrl, "Base URL of the collections API")
	storageBase := flags.String("storageBase", envConfig.StorageBase, "Base URL used for images without a presigned URL")
	dbDir := flags.String("dbDir", envConfig.DbDir, "Directory for the local session database")
	logLevel := flags.String("logLevel", envConfig.LogLevel, "Log level: ERROR, WARN, INFO, DEBUG, TRACE")
	httpTimeout := flags.Duration("httpTimeout", envConfig.HttpTimeout, "HTTP timeout, 0 waits forever")
	searchDebounce := flags.Duration("searchDebounce", envConfig.SearchDebounce, "Quiet period before a search is sent")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	initialRoute := flags.Arg(0)
	if initialRoute == "" {
		initialRoute = "/"
	}

	return &Params{
		apiUrl:         *apiUrl,
		storageBase:    *storageBase,
		dbDir:          *dbDir,
		logLevel:       *logLevel,
		httpTimeout:    *httpTimeout,
		searchDebounce: *searchDebounce,
		initialRoute:   initialRoute,
	}, nil
}

func defaultDbDir() string {
	if currentUser, err := user.Current(); err == nil {
		return filepath.Join(currentUser.HomeDir, constants.CollectorDir)
	}
	return constants.CollectorDir
}

func (s *Params) ApiUrl() string {
	return s.apiUrl
}

func (s *Params) StorageBase() string {
	return s.storageBase
}

func (s *Params) DbDir() string {
	return s.dbDir
}

func (s *Params) LogLevel() string {
	return s.logLevel
}

func (s *Params) HttpTimeout() time.Duration {
	return s.httpTimeout
}

func (s *Params) SearchDebounce() time.Duration {
	return s.searchDebounce
}

func (s *Params) InitialRoute() string {
	return s.initialRoute
}

func (s *Params) WithApiUrl(apiUrl string) *Params {
	s.apiUrl = apiUrl
	return s
}
