package config

const (
	defaultDataDir               = "~/.local/share/roulette"
	defaultLogDir                = "~/.local/share/roulette/logs"
	defaultTMDBBaseURL           = "https://api.themoviedb.org/3"
	defaultTMDBImageBaseURL      = "https://image.tmdb.org/t/p/w500"
	defaultTMDBRequestTimeout    = 10
	defaultTMDBMaxPages          = 500
	defaultAPIBind               = "127.0.0.1:7488"
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
	defaultCrossReferenceBaseURL = "https://m.imdb.com/title/"
	defaultEnvFile               = ".env"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
			EnvFile: defaultEnvFile,
		},
		TMDB: TMDB{
			BaseURL:               defaultTMDBBaseURL,
			ImageBaseURL:          defaultTMDBImageBaseURL,
			RequestTimeoutSeconds: defaultTMDBRequestTimeout,
			MaxPages:              defaultTMDBMaxPages,
			CrossReferenceBaseURL: defaultCrossReferenceBaseURL,
		},
		API: API{
			Bind: defaultAPIBind,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
