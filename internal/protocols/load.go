package protocols

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"

	"github.com/rs/zerolog/log"
)

var (
	ErrTableLoad      = errors.New("protocol table load failed")
	ErrArtifactProbe  = errors.New("protocol artifact probe failed")
	ErrArtifactDecode = errors.New("protocol artifact decode failed")
)

// DefaultTablesDir is the directory inside Embedded holding one <name>.json per mandatory protocol.
const DefaultTablesDir = "tables"

//go:embed tables/*.json
var embedded embed.FS

// Embedded returns the table set compiled into the binary.
func Embedded() fs.FS {
	return embedded
}

// LoadStatic loads every mandatory table from the embedded set.
func LoadStatic() (map[Name]Table, error) {
	return LoadTables(embedded, DefaultTablesDir)
}

// LoadTables loads every mandatory table from dir inside fsys. Any missing or
// malformed table fails the whole load.
func LoadTables(fsys fs.FS, dir string) (map[Name]Table, error) {
	names := Mandatory()
	out := make(map[Name]Table, len(names))
	for _, name := range names {
		file := path.Join(dir, string(name)+".json")
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrTableLoad, name, err)
		}
		table, err := decodeTable(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrTableLoad, name, err)
		}
		log.Debug().
			Str("protocol", string(name)).
			Int("endpoints", table.Endpoints()).
			Msg("protocols.LoadTables loaded")
		out[name] = table
	}
	return out, nil
}

// ResolveOptional probes name inside fsys for a generated table artifact.
//
// A missing artifact is an expected state and yields (nil, false, nil). Any
// other probe or read failure is returned wrapped in ErrArtifactProbe, and a
// present but malformed artifact in ErrArtifactDecode. A present artifact that
// decodes to an empty object still reports found=true.
func ResolveOptional(fsys fs.FS, name string) (Table, bool, error) {
	info, err := fs.Stat(fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug().Str("artifact", name).Msg("protocols.ResolveOptional not found")
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: %s: %w", ErrArtifactProbe, name, err)
	}
	if info.IsDir() {
		return nil, false, fmt.Errorf("%w: %s: is a directory", ErrArtifactProbe, name)
	}

	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %s: %w", ErrArtifactProbe, name, err)
	}
	table, err := decodeTable(data)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %s: %w", ErrArtifactDecode, name, err)
	}
	log.Debug().
		Str("artifact", name).
		Int("endpoints", table.Endpoints()).
		Msg("protocols.ResolveOptional found")
	return table, true, nil
}

func decodeTable(data []byte) (Table, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	var table Table
	if err := dec.Decode(&table); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("trailing data after table object")
	}
	if table == nil {
		table = Table{}
	}
	return table, nil
}
