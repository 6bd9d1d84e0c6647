package config

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port              int `yaml:"port" validate:"gt=0,lte=65535"`
	ReadTimeoutMS     int `yaml:"readTimeoutMS" validate:"gte=0"`
	WriteTimeoutMS    int `yaml:"writeTimeoutMS" validate:"gte=0"`
	ShutdownTimeoutMS int `yaml:"shutdownTimeoutMS" validate:"gte=0"`
}

// S3Config is used for data locations of the form s3://bucket/key
type S3Config struct {
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint" validate:"omitempty,url"`
}

// DataConfig points at the two user record sets. A location may be a file path,
// an http(s) URL or an s3:// URL; a trailing .gz means the document is gzipped.
type DataConfig struct {
	BasicUsers    string   `yaml:"basicUsers" validate:"required"`
	DetailedUsers string   `yaml:"detailedUsers" validate:"required"`
	TimeoutMS     int      `yaml:"timeoutMS" validate:"gte=0"`
	S3            S3Config `yaml:"s3"`
}

// SOAPConfig controls the SOAP/XML output
type SOAPConfig struct {
	// EscapeText enables XML entity escaping of element text. Off by default
	// so existing clients keep receiving the raw values.
	EscapeText bool `yaml:"escapeText"`
}

// LogConfig contains logging configuration
type LogConfig struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `yaml:"format" validate:"omitempty,oneof=console json"`
}

// CORSConfig contains cross-origin settings
type CORSConfig struct {
	Enabled        bool     `yaml:"enabled"`
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server ServerConfig `yaml:"server" validate:"required"`
	Data   DataConfig   `yaml:"data" validate:"required"`
	SOAP   SOAPConfig   `yaml:"soap"`
	Log    LogConfig    `yaml:"log"`
	CORS   CORSConfig   `yaml:"cors"`
}
