package examples

import (
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	derrors "github.com/sdmx-twg/vtldocs/internal/errors"
)

// Fixture is one discovered fixture file, numbered from 1 in stem order.
type Fixture struct {
	Position int
	// Name is the file stem, e.g. "ds_1".
	Name string
	// Folder is the fixture folder as a slash path relative to the docs root.
	Folder string
	// File is the fixture path relative to the operator folder, e.g. "examples/ds_1.csv".
	File string
}

// CollectFixtures lists the files in dir whose names match pattern and
// returns them ordered by stem. folder and relDir are recorded on each
// fixture; relDir is the fixture folder relative to the operator folder.
func CollectFixtures(dir, pattern, folder, relDir string) ([]Fixture, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, derrors.ScanFailed(dir, err)
	}

	type file struct{ stem, name string }
	var files []file
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ok, err := filepath.Match(pattern, entry.Name())
		if err != nil {
			return nil, derrors.ValidationFailed("pattern", err.Error())
		}
		if ok {
			name := entry.Name()
			files = append(files, file{stem: strings.TrimSuffix(name, filepath.Ext(name)), name: name})
		}
	}
	sort.Slice(files, func(i, j int) bool { return files[i].stem < files[j].stem })

	fixtures := make([]Fixture, 0, len(files))
	for i, f := range files {
		fixtures = append(fixtures, Fixture{
			Position: i + 1,
			Name:     f.stem,
			Folder:   folder,
			File:     path.Join(relDir, f.name),
		})
	}
	return fixtures, nil
}
