package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Identity providers accepted in AUTH_PROVIDER.
const (
	AuthProviderFirebase = "firebase" // Firebase ID tokens, subject = Firebase UID
	AuthProviderAuth0    = "auth0"    // Auth0 (or any OIDC issuer) RS256 access tokens, subject = "sub"
	AuthProviderHeader   = "header"   // Session subject forwarded by an authenticating proxy
)

// Config holds all configuration for the application.
type Config struct {
	Port                             string `mapstructure:"PORT"`
	GinMode                          string `mapstructure:"GIN_MODE"`
	FirebaseProjectID                string `mapstructure:"FIREBASE_PROJECT_ID"`
	GoogleApplicationCredentials     string `mapstructure:"GOOGLE_APPLICATION_CREDENTIALS"`
	FirebaseServiceAccountJSONBase64 string `mapstructure:"FIREBASE_SERVICE_ACCOUNT_JSON_BASE64"`
	ClientURL                        string `mapstructure:"CLIENT_URL"`
	AuthProvider                     string `mapstructure:"AUTH_PROVIDER"`
	Auth0Domain                      string `mapstructure:"AUTH0_DOMAIN"`
	Auth0Audience                    string `mapstructure:"AUTH0_AUDIENCE"`
	IdentityHeader                   string `mapstructure:"IDENTITY_HEADER"`
}

var envKeys = []string{
	"PORT",
	"GIN_MODE",
	"FIREBASE_PROJECT_ID",
	"GOOGLE_APPLICATION_CREDENTIALS",
	"FIREBASE_SERVICE_ACCOUNT_JSON_BASE64",
	"CLIENT_URL",
	"AUTH_PROVIDER",
	"AUTH0_DOMAIN",
	"AUTH0_AUDIENCE",
	"IDENTITY_HEADER",
}

// LoadConfig loads configuration from environment variables using Viper.
// Outside release mode a .env file in the working directory is read first; variables
// already present in the environment win.
func LoadConfig() (*Config, error) {
	if os.Getenv("GIN_MODE") != "release" {
		// A missing .env is normal; the environment is authoritative.
		_ = godotenv.Load()
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("AUTH_PROVIDER", AuthProviderFirebase)
	v.SetDefault("IDENTITY_HEADER", "X-USERID")

	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.New("failed to unmarshal config: " + err.Error())
	}
	cfg.AuthProvider = strings.ToLower(strings.TrimSpace(cfg.AuthProvider))

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.FirebaseProjectID == "" {
		return errors.New("FIREBASE_PROJECT_ID is required")
	}

	switch c.AuthProvider {
	case AuthProviderFirebase:
	case AuthProviderAuth0:
		if c.Auth0Domain == "" {
			return errors.New("AUTH0_DOMAIN is required when AUTH_PROVIDER=auth0")
		}
		if c.Auth0Audience == "" {
			return errors.New("AUTH0_AUDIENCE is required when AUTH_PROVIDER=auth0")
		}
	case AuthProviderHeader:
		if c.IdentityHeader == "" {
			return errors.New("IDENTITY_HEADER is required when AUTH_PROVIDER=header")
		}
	default:
		return fmt.Errorf("unsupported AUTH_PROVIDER %q (want firebase, auth0 or header)", c.AuthProvider)
	}
	return nil
}

// Auth0IssuerURL returns the issuer the Auth0 tokens must carry, with a trailing slash.
func (c *Config) Auth0IssuerURL() string {
	domain := strings.TrimSuffix(strings.TrimPrefix(c.Auth0Domain, "https://"), "/")
	return "https://" + domain + "/"
}

// Auth0JWKSURL returns the JSON Web Key Set endpoint of the Auth0 tenant.
func (c *Config) Auth0JWKSURL() string {
	return c.Auth0IssuerURL() + ".well-known/jwks.json"
}
