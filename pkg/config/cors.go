package config

import (
	"fmt"
	"strings"
)

type CORSConfig struct {
	AllowedOrigins   []string `koanf:"allowedOrigins"`
	AllowedMethods   []string `koanf:"allowedMethods"`
	AllowedHeaders   []string `koanf:"allowedHeaders"`
	AllowCredentials bool     `koanf:"allowCredentials"`
	MaxAge           int      `koanf:"maxAge"`
}

// String returns a string representation of the CORS configuration.
func (c *CORSConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- CORS ---\n")
	b.WriteString(fmt.Sprintf("  allowedOrigins: %s\n", strings.Join(c.AllowedOrigins, ",")))
	b.WriteString(fmt.Sprintf("  allowedMethods: %s\n", strings.Join(c.AllowedMethods, ",")))
	b.WriteString(fmt.Sprintf("  allowedHeaders: %s\n", strings.Join(c.AllowedHeaders, ",")))
	b.WriteString(fmt.Sprintf("  allowCredentials: %t\n", c.AllowCredentials))
	b.WriteString(fmt.Sprintf("  maxAge: %d\n", c.MaxAge))
	return b.String()
}

func (c *CORSConfig) Validate() error {
	if len(c.AllowedOrigins) == 0 {
		return fmt.Errorf("cors allowed origins are not configured")
	}
	if c.AllowCredentials {
		for _, origin := range c.AllowedOrigins {
			if origin == "*" {
				return fmt.Errorf("cors credentials cannot be allowed for wildcard origin")
			}
		}
	}
	if c.MaxAge < 0 {
		return fmt.Errorf("invalid cors max age: %d", c.MaxAge)
	}
	return nil
}
