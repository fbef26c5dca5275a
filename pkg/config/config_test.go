package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validHTTP() HTTPConfig {
	var c HTTPConfig
	c.Port = 8080
	c.Timeout.Read = time.Second
	c.Timeout.Write = time.Second
	c.Timeout.Idle = time.Second
	c.Timeout.ReadHeader = time.Second
	return c
}

func Test_HTTPConfig_Validate(t *testing.T) {
	testCases := []struct {
		name      string
		mutate    func(c *HTTPConfig)
		expectErr bool
	}{
		{name: "Success - valid", mutate: func(*HTTPConfig) {}},
		{name: "Error - port zero", mutate: func(c *HTTPConfig) { c.Port = 0 }, expectErr: true},
		{name: "Error - port too large", mutate: func(c *HTTPConfig) { c.Port = 70000 }, expectErr: true},
		{name: "Error - no write timeout", mutate: func(c *HTTPConfig) { c.Timeout.Write = 0 }, expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			c := validHTTP()
			tc.mutate(&c)
			// when
			err := c.Validate()
			// then
			if tc.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func Test_OptionalSections_Validate(t *testing.T) {
	testCases := []struct {
		name      string
		section   interface{ Validate() error }
		expectErr bool
	}{
		{name: "Success - nats disabled needs nothing", section: &NATSConfig{}},
		{name: "Error - nats enabled without url", section: &NATSConfig{Enabled: true, Timeout: time.Second, Stream: "CATALOG"}, expectErr: true},
		{name: "Error - nats enabled without stream", section: &NATSConfig{Enabled: true, Url: "nats://localhost:4222", Timeout: time.Second}, expectErr: true},
		{name: "Success - nats enabled", section: &NATSConfig{Enabled: true, Url: "nats://localhost:4222", Timeout: time.Second, Stream: "CATALOG"}},
		{name: "Success - telemetry disabled needs nothing", section: &TelemetryConfig{}},
		{name: "Error - telemetry enabled without endpoint", section: &TelemetryConfig{Enabled: true}, expectErr: true},
		{name: "Error - pprof enabled without address", section: &PProfConfig{Enabled: true}, expectErr: true},
		{name: "Error - pprof address without port", section: &PProfConfig{Enabled: true, Addr: "localhost"}, expectErr: true},
		{name: "Success - pprof enabled", section: &PProfConfig{Enabled: true, Addr: "localhost:6060"}},
		{name: "Success - pprof disabled ignores address", section: &PProfConfig{Addr: "localhost"}},
		{name: "Error - shutdown without timeout", section: &ShutdownConfig{}, expectErr: true},
		{name: "Error - shutdown negative timeout", section: &ShutdownConfig{Timeout: -time.Second}, expectErr: true},
		{name: "Error - shutdown timeout above limit", section: &ShutdownConfig{Timeout: time.Hour}, expectErr: true},
		{name: "Success - shutdown timeout", section: &ShutdownConfig{Timeout: 10 * time.Second}},
		{name: "Error - unknown log level", section: &LogConfig{Level: "verbose"}, expectErr: true},
		{name: "Success - upper case log level", section: &LogConfig{Level: "DEBUG"}},
		{name: "Error - cors without origins", section: &CORSConfig{}, expectErr: true},
		{name: "Error - cors credentials with wildcard", section: &CORSConfig{AllowedOrigins: []string{"*"}, AllowCredentials: true}, expectErr: true},
		{name: "Success - cors wildcard", section: &CORSConfig{AllowedOrigins: []string{"*"}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			err := tc.section.Validate()
			// then
			if tc.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
