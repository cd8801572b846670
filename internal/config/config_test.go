package config

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	t.Setenv("RIFAS_TEST_NAME", "fiesta")
	t.Setenv("RIFAS_TEST_PRICE", "2.5")

	var cfg struct {
		Name  string  `env:"RIFAS_TEST_NAME"`
		Price float64 `env:"RIFAS_TEST_PRICE"`
		Dir   string  `env:"RIFAS_TEST_DIR" envDefault:"."`
	}
	require.NoError(t, ParseEnv(&cfg))
	assert.Equal(t, "fiesta", cfg.Name)
	assert.Equal(t, 2.5, cfg.Price)
	assert.Equal(t, ".", cfg.Dir)
}

func TestParseEnvInvalid(t *testing.T) {
	t.Setenv("RIFAS_TEST_PRICE", "cheap")

	var cfg struct {
		Price float64 `env:"RIFAS_TEST_PRICE"`
	}
	err := ParseEnv(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env")
}

func TestExitf(t *testing.T) {
	var buf bytes.Buffer
	code := -1
	prevStderr, prevExit := stderr, exit
	stderr, exit = &buf, func(c int) { code = c }
	t.Cleanup(func() {
		stderr, exit = prevStderr, prevExit
	})

	Exitf("render poster: %v", "boom")
	assert.Equal(t, 1, code)
	assert.Equal(t, "render poster: boom\n", buf.String())
}
