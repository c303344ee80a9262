package io

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExampleRunFile(t *testing.T) {
	con, err := ParseRunConfig(ExampleRunFile)
	require.NoError(t, err)
	require.NoError(t, con.CheckInit())

	assert.Equal(t, 18.0, con.Shower.LogEnergy)
	assert.InEpsilon(t, 1e18, con.Shower.Energy(), 1e-12)
	assert.Equal(t, 50, con.Shower.Steps)
	assert.Equal(t, 20, con.Shower.Count)
	assert.Equal(t, 100000, con.Shower.FirstInteractions)
	assert.Equal(t, 300e-7, con.Cherenkov.WaveMin)
	assert.Equal(t, 400e-7, con.Cherenkov.WaveMax)
	assert.Equal(t, "path/to/atmosphere.txt", con.Atmosphere.File)
	assert.False(t, con.Output.Plot)
	assert.Equal(t, "info", con.Output.LogLevel)
}

func TestDefaults(t *testing.T) {
	con, err := ParseRunConfig(`
[Shower]
LogEnergy = 17.5
Theta = 30

[Atmosphere]
File = atm.txt
`)
	require.NoError(t, err)
	require.NoError(t, con.CheckInit())

	assert.Equal(t, 30.0, con.Shower.Theta)
	assert.Equal(t, 50, con.Shower.Steps)
	assert.Equal(t, 20, con.Shower.Count)
	assert.Equal(t, 100000, con.Shower.FirstInteractions)
	assert.Equal(t, int64(0), con.Shower.Seed)
	assert.Equal(t, 300e-7, con.Cherenkov.WaveMin)
	assert.Equal(t, ".", con.Output.Dir)
	assert.Equal(t, "info", con.Output.LogLevel)
}

func TestCheckInit(t *testing.T) {
	table := []struct {
		name string
		edit func(*RunConfig)
	}{
		{"no energy", func(c *RunConfig) { c.Shower.LogEnergy = 0 }},
		{"below Ec", func(c *RunConfig) { c.Shower.LogEnergy = 7 }},
		{"negative theta", func(c *RunConfig) { c.Shower.Theta = -1 }},
		{"horizontal", func(c *RunConfig) { c.Shower.Theta = 90 }},
		{"one step", func(c *RunConfig) { c.Shower.Steps = 1 }},
		{"no showers", func(c *RunConfig) { c.Shower.Count = 0 }},
		{"no first interactions", func(c *RunConfig) { c.Shower.FirstInteractions = 0 }},
		{"negative seed", func(c *RunConfig) { c.Shower.Seed = -3 }},
		{"zero wave", func(c *RunConfig) { c.Cherenkov.WaveMin = 0 }},
		{"inverted band", func(c *RunConfig) { c.Cherenkov.WaveMax = 200e-7 }},
		{"no file", func(c *RunConfig) { c.Atmosphere.File = "" }},
		{"no dir", func(c *RunConfig) { c.Output.Dir = "" }},
		{"bad level", func(c *RunConfig) { c.Output.LogLevel = "loud" }},
	}

	for _, test := range table {
		con := DefaultRunConfig()
		con.Shower.LogEnergy = 18
		con.Atmosphere.File = "atm.txt"
		require.NoError(t, con.CheckInit(), test.name)

		test.edit(con)
		assert.Error(t, con.CheckInit(), test.name)
	}
}

func TestLogLevelCase(t *testing.T) {
	con := DefaultRunConfig()
	con.Output.LogLevel = "DEBUG"
	require.NoError(t, con.Output.CheckInit())
	assert.Equal(t, "debug", con.Output.LogLevel)
}

func TestReadRunConfig(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "run.cfg")
	require.NoError(t, os.WriteFile(fname, []byte(ExampleRunFile), 0644))

	con, err := ReadRunConfig(fname)
	require.NoError(t, err)
	assert.Equal(t, 18.0, con.Shower.LogEnergy)

	_, err = ReadRunConfig(filepath.Join(t.TempDir(), "missing.cfg"))
	assert.Error(t, err)

	_, err = ParseRunConfig("[Shower]\nColour = blue\n")
	assert.Error(t, err)
}
