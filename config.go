package archivecrypt

import (
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Params are the tunable crypto settings, loaded from the environment by the
// application's composition root. The compiled defaults match the values
// every existing deployment was initialized with; overriding
// ARCHIVE_PBKDF2_ITERATIONS on an existing database will make the derived
// key stop matching stored ciphertexts.
type Params struct {
	PBKDF2Iterations int `env:"ARCHIVE_PBKDF2_ITERATIONS" envDefault:"100000"`
	SweepBatchSize   int `env:"ARCHIVE_SWEEP_BATCH_SIZE" envDefault:"100"`
}

var loadEnvOnce sync.Once

// LoadParams reads Params from the environment, loading a .env file first if
// one exists.
func LoadParams() (Params, error) {
	loadEnvOnce.Do(func() {
		// The .env file is optional.
		_ = godotenv.Load()
	})

	var p Params
	if err := env.Parse(&p); err != nil {
		return Params{}, fmt.Errorf("archivecrypt: parsing env config: %w", err)
	}
	if p.PBKDF2Iterations <= 0 {
		return Params{}, fmt.Errorf("archivecrypt: ARCHIVE_PBKDF2_ITERATIONS must be positive")
	}
	if p.SweepBatchSize <= 0 {
		return Params{}, fmt.Errorf("archivecrypt: ARCHIVE_SWEEP_BATCH_SIZE must be positive")
	}
	return p, nil
}
