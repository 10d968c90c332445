package config

// BuildVersion is set at build time (-ldflags "-X .../config.BuildVersion=...")
var BuildVersion = "unknown"

// Config is the whole configuration of the app
var Config = struct {

	// LogrusLevel sets the logrus logging level
	LogrusLevel string `env:"REPOMCP_LOGRUS_LEVEL" envDefault:"info"`
	// LogrusFormat sets the logrus logging formatter
	// Possible values: text, json
	LogrusFormat string `env:"REPOMCP_LOGRUS_FORMAT" envDefault:"text"`

	// AliasDomain is the branded domain answering for github repositories
	AliasDomain string `env:"REPOMCP_ALIAS_DOMAIN" envDefault:"repomcp.com"`
	// PagesDomain is the github pages domain
	PagesDomain string `env:"REPOMCP_PAGES_DOMAIN" envDefault:"github.io"`
	// PreviewHosts - comma separated list of temporary preview hosts
	PreviewHosts []string `env:"REPOMCP_PREVIEW_HOSTS" envSeparator:"," envDefault:"git-mcp.talya7625.workers.dev"`
	DevHost      string   `env:"REPOMCP_DEV_HOST" envDefault:"localhost"`
	// HostsConfigFile - optional yaml file extending the hosts above
	HostsConfigFile string `env:"REPOMCP_HOSTS_CONFIG_FILE" envDefault:""`

	ServerHost string `env:"REPOMCP_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"REPOMCP_SERVER_PORT" envDefault:"18000"`

	MiddlewareGzipEnabled              bool     `env:"REPOMCP_MIDDLEWARE_GZIP_ENABLED" envDefault:"true"`
	MiddlewareVerboseLoggerEnabled     bool     `env:"REPOMCP_MIDDLEWARE_VERBOSE_LOGGER_ENABLED" envDefault:"true"`
	MiddlewareVerboseLoggerExcludeURLs []string `env:"REPOMCP_MIDDLEWARE_VERBOSE_LOGGER_EXCLUDE_URLS" envSeparator:"," envDefault:"/_/liveness,/_/readiness"`

	CORSEnabled          bool     `env:"REPOMCP_CORS_ENABLED" envDefault:"false"`
	CORSAllowCredentials bool     `env:"REPOMCP_CORS_ALLOW_CREDENTIALS" envDefault:"false"`
	CORSAllowedHeaders   []string `env:"REPOMCP_CORS_ALLOWED_HEADERS" envSeparator:"," envDefault:"Origin,Accept,Content-Type,X-Requested-With"`
	CORSAllowedMethods   []string `env:"REPOMCP_CORS_ALLOWED_METHODS" envSeparator:"," envDefault:"GET,HEAD,OPTIONS"`
	CORSAllowedOrigins   []string `env:"REPOMCP_CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	CORSExposedHeaders   []string `env:"REPOMCP_CORS_EXPOSED_HEADERS" envSeparator:","`

	// OpenTelemetryEnabled - export traces through otlp/grpc
	OpenTelemetryEnabled      bool   `env:"REPOMCP_OPENTELEMETRY_ENABLED" envDefault:"false"`
	OpenTelemetryGrpcEndpoint string `env:"REPOMCP_OPENTELEMETRY_GRPC_ENDPOINT" envDefault:"localhost:4317"`
}{}
