package config

type Config interface {
	EnvConfig
	AuthConfig
	DBConfig
	CatalogConfig
	CorsConfig
	BootstrapConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

// BootstrapConfig supplies the initial admin account seeded at startup.
type BootstrapConfig interface {
	GetAdminEmail() string
	GetAdminUsername() string
	GetAdminPassword() string
}

type mainConfig struct {
	EnvVars
	Auth
	DB
	Catalog
	Cors
	Bootstrap
}

func New() Config {
	return mainConfig{}
}
