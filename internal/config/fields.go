package config

import "github.com/jrsteele09/go-auth-client/authconf"

type Fields struct{}

var _ FieldConfig = Fields{}

func (Fields) GetUsernameField() string {
	return GetEnv("AUTH_USERNAME_FIELD", authconf.DefaultUsernameField)
}

func (Fields) GetTokenField() string {
	return GetEnv("AUTH_TOKEN_FIELD", authconf.DefaultTokenField)
}

func (Fields) GetRolesField() string {
	return GetEnv("AUTH_ROLES_FIELD", authconf.DefaultRolesField)
}

func (Fields) GetRefreshTokenField() string {
	return GetEnv("AUTH_REFRESH_TOKEN_FIELD", authconf.DefaultRefreshTokenField)
}

func (Fields) GetTokenTypeField() string {
	return GetEnv("AUTH_TOKEN_TYPE_FIELD", authconf.DefaultTokenTypeField)
}

// AuthOptions converts the environment into authconf options.
func AuthOptions(c Config) []authconf.Option {
	return []authconf.Option{
		authconf.WithEndpointURL(c.GetEndpointURL()),
		authconf.WithLogoutEndpointURL(c.GetLogoutEndpointURL()),
		authconf.WithLoginDestination(c.GetLoginDestination()),
		authconf.WithUsernameField(c.GetUsernameField()),
		authconf.WithTokenField(c.GetTokenField()),
		authconf.WithRolesField(c.GetRolesField()),
		authconf.WithRefreshTokenField(c.GetRefreshTokenField()),
		authconf.WithTokenTypeField(c.GetTokenTypeField()),
	}
}
