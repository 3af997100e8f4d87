package config

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"math/rand"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the settings read from the environment and an optional .env
// file. Command-line flags override them.
type Config struct {
	DBPath  string `env:"HABITEX_DB"`
	Seed    int64  `env:"HABITEX_SEED" envDefault:"0"`
	Verbose bool   `env:"HABITEX_VERBOSE" envDefault:"false"`
}

// Load reads envFiles (".env" when none are given) and then the environment.
// Missing files are ignored.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Logger returns the diagnostic logger. It is silent unless Verbose is set.
func (c Config) Logger() *log.Logger {
	var out io.Writer = io.Discard
	if c.Verbose {
		out = os.Stderr
	}
	return log.New(out, "[habitex] ", log.LstdFlags)
}

// Rand returns the source loot boxes draw from. A zero Seed picks a random one.
func (c Config) Rand() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = newSeed()
	}
	return rand.New(rand.NewSource(seed))
}

func newSeed() int64 {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		return 1
	}
	return int64(binary.LittleEndian.Uint64(buf[:]) &^ (1 << 63))
}
