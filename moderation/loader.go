package moderation

import (
	"bufio"
	"bytes"
	"embed"
	"io/fs"
	"sort"
	"strings"

	apperrors "github.com/AJYORK88/ConnectSphere-Online/errors"
)

//go:embed words/*
var wordsFS embed.FS

// Dictionary carries the loaded word list plus metadata for logging.
type Dictionary struct {
	Words     []string
	Languages []string
}

// DefaultDictionary loads the embedded per-language word files. Each
// "words/<lang>.txt" file contributes one word per line.
func DefaultDictionary() (*Dictionary, error) {
	return loadDictionary(wordsFS, "words")
}

func loadDictionary(f embed.FS, dir string) (*Dictionary, error) {
	entries, err := fs.ReadDir(f, dir)
	if err != nil {
		return nil, err
	}

	var languages []string
	unique := make(map[string]struct{})
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		languages = append(languages, strings.TrimSuffix(entry.Name(), ".txt"))

		data, err := f.ReadFile(dir + "/" + entry.Name())
		if err != nil {
			return nil, err
		}

		// A scanner copes with both \n and \r\n endings.
		scanner := bufio.NewScanner(bytes.NewReader(data))
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				unique[line] = struct{}{}
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}

	if len(unique) == 0 {
		return nil, apperrors.ErrEmptyWords
	}

	words := make([]string, 0, len(unique))
	for w := range unique {
		words = append(words, w)
	}
	sort.Strings(words)

	return &Dictionary{Words: words, Languages: languages}, nil
}
