package config

import (
	"fmt"
	"strings"
)

type StoreConfig struct {
	Seed bool `koanf:"seed"`
}

// String returns a string representation of the store configuration.
func (c *StoreConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Store ---\n")
	b.WriteString(fmt.Sprintf("  seed: %t\n", c.Seed))
	return b.String()
}
