package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	var cfg Config
	cfg.App.Port = 38471
	cfg.Search.RangeDays = 30
	cfg.Search.Modalities = []string{"6", "8"}
	return cfg
}

func TestNormalizeAndValidate_OK(t *testing.T) {
	out, vr := NormalizeAndValidate(validConfig())
	assert.True(t, vr.OK())
	assert.Empty(t, vr.Errors)
	assert.Equal(t, []string{"6", "8"}, out.Search.Modalities)
}

func TestNormalizeAndValidate_TrimsAndDedupes(t *testing.T) {
	cfg := validConfig()
	cfg.Search.Keywords = []string{" Médico ", "médico", "", "plantão", "MÉDICO"}
	out, vr := NormalizeAndValidate(cfg)
	require.True(t, vr.OK())
	assert.Equal(t, []string{"Médico", "plantão"}, out.Search.Keywords)
}

func TestNormalizeAndValidate_PortRange(t *testing.T) {
	cfg := validConfig()
	cfg.App.Port = 0
	_, vr := NormalizeAndValidate(cfg)
	assert.False(t, vr.OK())

	cfg.App.Port = 70000
	_, vr = NormalizeAndValidate(cfg)
	assert.False(t, vr.OK())
}

func TestNormalizeAndValidate_PageSizeBounds(t *testing.T) {
	cfg := validConfig()
	cfg.PNCP.PageSize = 501
	_, vr := NormalizeAndValidate(cfg)
	assert.False(t, vr.OK())
}

func TestNormalizeAndValidate_SnapshotRequirements(t *testing.T) {
	cfg := validConfig()
	cfg.Snapshot.Enabled = true
	_, vr := NormalizeAndValidate(cfg)
	assert.False(t, vr.OK())
	assert.Len(t, vr.Errors, 2) // out_path and refresh_minutes

	cfg.Snapshot.OutPath = "snapshot.json"
	cfg.Snapshot.RefreshMinutes = 360
	_, vr = NormalizeAndValidate(cfg)
	assert.True(t, vr.OK())
}

func TestNormalizeAndValidate_Warnings(t *testing.T) {
	cfg := validConfig()
	cfg.Search.RangeDays = 400
	cfg.PNCP.RatePerSec = 20
	_, vr := NormalizeAndValidate(cfg)
	assert.True(t, vr.OK(), "warnings must not block saving")
	assert.NotEmpty(t, vr.Warnings)
}

func TestConfigAccessorDefaults(t *testing.T) {
	var cfg Config
	assert.Equal(t, "20s", cfg.Timeout().String())
	assert.Equal(t, "120ms", cfg.PageDelay().String())
	assert.Equal(t, "250ms", cfg.RunDelay().String())
	assert.Equal(t, []string{"6", "8", "2", "3", "7"}, cfg.ModalityCodes())

	cfg.PNCP.TimeoutSeconds = 45
	assert.Equal(t, "45s", cfg.Timeout().String())
	cfg.Search.Modalities = []string{"6"}
	assert.Equal(t, []string{"6"}, cfg.ModalityCodes())
}
