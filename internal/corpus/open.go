package corpus

import (
	"fmt"
	"io/fs"
	"os"

	"interview-assistant/configs"
	"interview-assistant/internal/config"
)

// FS returns the filesystem the configured corpus lives in: the directory
// when one is set, the bundled corpus otherwise.
func FS(cfg config.CorpusConfig) (fs.FS, error) {
	if cfg.Dir == "" {
		return configs.CorpusFS(), nil
	}
	info, err := os.Stat(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("corpus directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("corpus directory %s is not a directory", cfg.Dir)
	}
	return os.DirFS(cfg.Dir), nil
}

// Open loads the configured corpus.
func Open(cfg config.CorpusConfig) (*Corpus, error) {
	fsys, err := FS(cfg)
	if err != nil {
		return nil, err
	}
	registry := cfg.Registry
	if registry == "" {
		registry = "registry.yaml"
	}
	return Load(fsys, registry)
}
