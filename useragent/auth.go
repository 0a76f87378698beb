package useragent

// AuthType identifies the authentication scheme.
type AuthType int

const (
	AuthNone AuthType = iota
	// AuthBot sends "Authorization: Bot <token>", the scheme chat bots use.
	AuthBot
	AuthBearer
	AuthBasic
	// AuthCustom runs Apply against every request.
	AuthCustom
)

// AuthConfig configures request authentication.
type AuthConfig struct {
	Type     AuthType
	Token    string
	Username string
	Password string
	Apply    OptionHook
}

// BotAuth creates a bot token auth config.
func BotAuth(token string) *AuthConfig {
	return &AuthConfig{Type: AuthBot, Token: token}
}

// BearerAuth creates an OAuth2 bearer token auth config.
func BearerAuth(token string) *AuthConfig {
	return &AuthConfig{Type: AuthBearer, Token: token}
}

// BasicAuth creates a basic auth config.
func BasicAuth(username, password string) *AuthConfig {
	return &AuthConfig{Type: AuthBasic, Username: username, Password: password}
}

// CustomAuth creates an auth config that runs fn on every request.
func CustomAuth(fn OptionHook) *AuthConfig {
	return &AuthConfig{Type: AuthCustom, Apply: fn}
}

// Hook returns an OptionHook applying the credentials, or nil for AuthNone.
func (a *AuthConfig) Hook() OptionHook {
	if a == nil {
		return nil
	}
	switch a.Type {
	case AuthBot:
		token := a.Token
		return func(h *Handle) { h.Request.Header.Set("Authorization", "Bot "+token) }
	case AuthBearer:
		token := a.Token
		return func(h *Handle) { h.Request.Header.Set("Authorization", "Bearer "+token) }
	case AuthBasic:
		user, pass := a.Username, a.Password
		return func(h *Handle) { h.Request.SetBasicAuth(user, pass) }
	case AuthCustom:
		return a.Apply
	default:
		return nil
	}
}
