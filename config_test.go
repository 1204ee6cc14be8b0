package archivecrypt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadParams_Defaults(t *testing.T) {
	p, err := LoadParams()
	require.NoError(t, err)
	require.Equal(t, DefaultIterations, p.PBKDF2Iterations)
	require.Equal(t, defaultBatchSize, p.SweepBatchSize)
}

func TestLoadParams_Overrides(t *testing.T) {
	t.Setenv("ARCHIVE_PBKDF2_ITERATIONS", "250000")
	t.Setenv("ARCHIVE_SWEEP_BATCH_SIZE", "500")

	p, err := LoadParams()
	require.NoError(t, err)
	require.Equal(t, 250000, p.PBKDF2Iterations)
	require.Equal(t, 500, p.SweepBatchSize)
}

func TestLoadParams_Invalid(t *testing.T) {
	t.Setenv("ARCHIVE_PBKDF2_ITERATIONS", "-1")

	_, err := LoadParams()
	require.Error(t, err)
}

func TestLoadParams_Unparseable(t *testing.T) {
	t.Setenv("ARCHIVE_PBKDF2_ITERATIONS", "lots")

	_, err := LoadParams()
	require.Error(t, err)
}
