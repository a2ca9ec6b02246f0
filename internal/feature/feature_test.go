package feature

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
flags:
  tournament_expansion:
    enabled: true
    description: Speaker results under each tournament
  judge_navigation:
    enabled: false
`

func TestParse(t *testing.T) {
	s, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.True(t, s.Enabled(TournamentExpansion))
	assert.False(t, s.Enabled(JudgeNavigation))
	assert.False(t, s.Enabled("unknown"))

	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, JudgeNavigation, list[0].Name)
	assert.Equal(t, "Speaker results under each tournament", list[1].Description)
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte("flags: [not, a, map"))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Empty(t, s.List())
	assert.False(t, s.Enabled(TournamentExpansion))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "features.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	s, err := Load(path)
	require.NoError(t, err)
	assert.True(t, s.Enabled(TournamentExpansion))
}

func TestNilSet(t *testing.T) {
	var s *Set
	assert.False(t, s.Enabled(TournamentExpansion))
	assert.Empty(t, s.List())
}
