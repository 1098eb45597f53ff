package datasets_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playlake/playlake/pkg/datasets"
)

// TestParse_Valid verifies parsing of a complete datasets file and the
// suffix default.
func TestParse_Valid(t *testing.T) {
	doc := `
datasets:
  - name: song_data
    path: song_data
  - name: log_data
    path: /log_data/
    suffix: .jsonl
`
	cfg, err := datasets.Parse([]byte(doc))
	require.NoError(t, err)
	require.Len(t, cfg.Datasets, 2)

	sd, err := cfg.Get(datasets.SongData)
	require.NoError(t, err)
	assert.Equal(t, "song_data", sd.Path)
	assert.Equal(t, ".json", sd.Suffix)

	ld, err := cfg.Get(datasets.LogData)
	require.NoError(t, err)
	assert.Equal(t, "log_data", ld.Path, "path separators are trimmed")
	assert.Equal(t, ".jsonl", ld.Suffix)
}

// TestParse_MissingRequired verifies that both well-known datasets must
// be declared.
func TestParse_MissingRequired(t *testing.T) {
	doc := `
datasets:
  - name: song_data
    path: song_data
`
	_, err := datasets.Parse([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_data")
}

// TestParse_Duplicate verifies rejection of duplicate dataset names.
func TestParse_Duplicate(t *testing.T) {
	doc := `
datasets:
  - name: song_data
    path: a
  - name: song_data
    path: b
  - name: log_data
    path: c
`
	_, err := datasets.Parse([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

// TestParse_BadYAML verifies the error path for malformed documents.
func TestParse_BadYAML(t *testing.T) {
	_, err := datasets.Parse([]byte("datasets: [what"))
	require.Error(t, err)
}

// TestGet_Unknown verifies the error for an undeclared dataset.
func TestGet_Unknown(t *testing.T) {
	doc := `
datasets:
  - name: song_data
    path: a
  - name: log_data
    path: b
`
	cfg, err := datasets.Parse([]byte(doc))
	require.NoError(t, err)

	_, err = cfg.Get("clickstream")
	require.Error(t, err)
}
