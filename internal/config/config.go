package config

type Config interface {
	EnvConfig
	FieldConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEndpointURL() string
	GetLogoutEndpointURL() string
	GetLoginDestination() string
	GetStoreDriver() string
	GetStorePath() string
	GetLogLevel() string
	GetEnv() string
}

// FieldConfig names the login response fields the session is read from.
type FieldConfig interface {
	GetUsernameField() string
	GetTokenField() string
	GetRolesField() string
	GetRefreshTokenField() string
	GetTokenTypeField() string
}

type mainConfig struct {
	EnvVars
	Fields
}

func New() Config {
	return mainConfig{}
}
