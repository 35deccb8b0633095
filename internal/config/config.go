package config

// Config holds all application configuration. It is built once at startup,
// validated, and passed by reference; nothing reads the environment after
// load.
type Config struct {
	Server       ServerConfig       `mapstructure:"server"        validate:"required"`
	Database     DatabaseConfig     `mapstructure:"database"      validate:"required"`
	Auth         AuthConfig         `mapstructure:"auth"          validate:"required"`
	Storage      StorageConfig      `mapstructure:"storage"       validate:"required"`
	InitialAdmin InitialAdminConfig `mapstructure:"initial_admin"`
}

// ServerConfig contains all HTTP server related settings.
type ServerConfig struct {
	Port                   int      `mapstructure:"port"                     validate:"required,gt=0,lt=65536"`
	LogLevel               string   `mapstructure:"log_level"                validate:"required,oneof=debug info warn error"`
	AllowedOrigins         []string `mapstructure:"allowed_origins"`
	ReadTimeoutSeconds     int      `mapstructure:"read_timeout_seconds"     validate:"gt=0"`
	WriteTimeoutSeconds    int      `mapstructure:"write_timeout_seconds"    validate:"gt=0"`
	IdleTimeoutSeconds     int      `mapstructure:"idle_timeout_seconds"     validate:"gt=0"`
	ShutdownTimeoutSeconds int      `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// DatabaseConfig contains all database related settings.
type DatabaseConfig struct {
	URL          string `mapstructure:"url"            validate:"required"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gt=0"`
	MaxIdleConns int    `mapstructure:"max_idle_conns" validate:"gt=0"`
}

// AuthConfig contains authentication and token settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
	BcryptCost           int    `mapstructure:"bcrypt_cost"            validate:"gte=4,lte=31"`
}

// StorageConfig contains attachment storage settings.
type StorageConfig struct {
	UploadsDir     string `mapstructure:"uploads_dir"      validate:"required"`
	MaxUploadBytes int64  `mapstructure:"max_upload_bytes" validate:"required,gt=0"`
}

// InitialAdminConfig describes the admin account ensured at startup.
// Seeding is skipped when email or password is empty. Without it no Admin
// could ever exist, since registration defaults new accounts to Employee.
type InitialAdminConfig struct {
	Name     string `mapstructure:"name"`
	Email    string `mapstructure:"email"    validate:"omitempty,email"`
	Password string `mapstructure:"password" validate:"omitempty,min=8,max=72"`
}
