package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds all settings of the directory service. Values are taken from
// environment variables, falling back to the defaults below.
type Config struct {
	Port           int    `mapstructure:"PORT"`
	DBUser         string `mapstructure:"DBUSER"`
	DBPwd          string `mapstructure:"DBPWD"`
	DBHost         string `mapstructure:"DBHOST"`
	DBName         string `mapstructure:"DBNAME"`
	GinLogging     string `mapstructure:"GIN_LOGGING"`
	JWTSecret      string `mapstructure:"JWT_SECRET"`
	JWTExpiryHours int    `mapstructure:"JWT_EXPIRY_HOURS"`

	// ContactScope controls how widely the (name, phone) uniqueness of
	// contact entries is enforced: "global" rejects a pair that any account
	// already owns, "owner" only rejects duplicates within one account.
	ContactScope string `mapstructure:"CONTACT_SCOPE"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("PORT", 8080)
	v.SetDefault("DBUSER", "")
	v.SetDefault("DBPWD", "")
	v.SetDefault("DBHOST", "localhost")
	v.SetDefault("DBNAME", "test")
	v.SetDefault("GIN_LOGGING", "on")
	v.SetDefault("JWT_SECRET", "override-me-in-prod")
	v.SetDefault("JWT_EXPIRY_HOURS", 24)
	v.SetDefault("CONTACT_SCOPE", "global")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
