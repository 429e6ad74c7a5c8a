package config

import (
	"os"
	"path/filepath"
)

const (
	appNameVar          = "APP_NAME"
	endpointURLVar      = "AUTH_ENDPOINT_URL"
	logoutURLVar        = "AUTH_LOGOUT_URL"
	loginDestinationVar = "AUTH_LOGIN_DESTINATION"
	storeDriverVar      = "AUTH_STORE_DRIVER"
	storePathVar        = "AUTH_STORE_PATH"
	logLevelVar         = "LOG_LEVEL"
)

const (
	StoreDriverFile   = "file"
	StoreDriverSQLite = "sqlite"
	StoreDriverMemory = "memory"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "authctl")
}

// GetEndpointURL returns the login endpoint credentials are POSTed to
func (EnvVars) GetEndpointURL() string {
	return GetEnv(endpointURLVar, "")
}

// GetLogoutEndpointURL returns the optional logout endpoint, empty when not configured
func (EnvVars) GetLogoutEndpointURL() string {
	return GetEnv(logoutURLVar, "")
}

func (EnvVars) GetLoginDestination() string {
	return GetEnv(loginDestinationVar, "login")
}

func (EnvVars) GetStoreDriver() string {
	return GetEnv(storeDriverVar, StoreDriverFile)
}

// GetStorePath is a directory for the file driver and a database file for sqlite
func (e EnvVars) GetStorePath() string {
	def := ".authctl"
	if home, err := os.UserHomeDir(); err == nil {
		def = filepath.Join(home, ".authctl")
	}
	if e.GetStoreDriver() == StoreDriverSQLite {
		def = filepath.Join(def, "auth.db")
	}
	return GetEnv(storePathVar, def)
}

func (EnvVars) GetLogLevel() string {
	return GetEnv(logLevelVar, "info")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
