package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8080", c.EndpointAddr)
	assert.Equal(t, 15*time.Minute, c.AccessTokenValidityDuration)
	assert.Equal(t, 24*time.Hour, c.RefreshTokenValidityDuration)
	assert.Equal(t, "vault", c.S3Bucket)
	assert.Equal(t, 15*time.Minute, c.PresignExpiry)
}

func TestValidate(t *testing.T) {
	var c Config
	c.LoadDefaults()
	require.NoError(t, c.Validate())

	c.SecretKey = ""
	require.Error(t, c.Validate())

	c.LoadDefaults()
	c.SecretKey = "short"
	require.Error(t, c.Validate())

	c.LoadDefaults()
	c.S3BaseEndpoint = "not a url"
	require.Error(t, c.Validate())
}

func TestParseEnv_Overlay(t *testing.T) {
	t.Setenv("ENDPOINT_ADDR", ":9999")
	t.Setenv("ACCESS_TOKEN_VALIDITY", "7m")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, ":9999", c.EndpointAddr)
	assert.Equal(t, 7*time.Minute, c.AccessTokenValidityDuration)
	assert.Equal(t, "vault", c.S3Bucket)
}
