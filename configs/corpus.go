package configs

import (
	"embed"
	"io/fs"
)

//go:embed corpus
var corpusFiles embed.FS

// CorpusFS returns the bundled question corpus rooted at its registry.
func CorpusFS() fs.FS {
	sub, err := fs.Sub(corpusFiles, "corpus")
	if err != nil {
		panic(err)
	}
	return sub
}
