package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_AllFields(t *testing.T) {
	dir := t.TempDir()
	content := `output_dir: gs://my-project/lirical-results
lirical_data_dir: gs://my-project/LIRICAL/data
exomiser_data_dir: gs://my-project/exomiser/2109_hg38
transcriptdb: RefSeq
orphanet: true
use_global: true
vcf:
  - gs://my-project/vcfs/*.vcf.gz
  - gs://my-project/extra/S99.vcf.bgz
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "gs://my-project/lirical-results", cfg.OutputDir)
	assert.Equal(t, "gs://my-project/LIRICAL/data", cfg.LiricalDataDir)
	assert.Equal(t, "gs://my-project/exomiser/2109_hg38", cfg.ExomiserDataDir)
	assert.Equal(t, "RefSeq", cfg.TranscriptDB)
	assert.True(t, cfg.Orphanet)
	assert.True(t, cfg.UseGlobal)
	assert.Equal(t, []string{"gs://my-project/vcfs/*.vcf.gz", "gs://my-project/extra/S99.vcf.bgz"}, cfg.VCF)
}

func TestLoad_MinimalYAML(t *testing.T) {
	dir := t.TempDir()
	content := `output_dir: hail-az://account/container/results
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "hail-az://account/container/results", cfg.OutputDir)
	assert.Equal(t, "", cfg.TranscriptDB)
	assert.False(t, cfg.Orphanet)
	assert.Empty(t, cfg.VCF)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load(t.TempDir())
	assert.True(t, errors.Is(err, ErrConfigNotFound), "expected ErrConfigNotFound, got: %v", err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("{{invalid"), 0644))

	cfg, err := Load(dir)
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(""), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, RunDefaults{}, *cfg)
}
