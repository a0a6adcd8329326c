package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/danmuck/protoreg/internal/protocols"
	"github.com/rs/zerolog/log"
)

var ErrAssemble = errors.New("registry assemble failed")

// DefaultBidiArtifact is the generated Bidi table location relative to the repo root.
const DefaultBidiArtifact = "packages/wdio-protocols/src/protocols/webdriverBidi.json"

// Options controls where Assemble looks for its inputs.
type Options struct {
	// Root is probed for the optional Bidi artifact. Nil selects the
	// process working directory.
	Root fs.FS

	// BidiArtifact is the slash-separated path of the artifact inside Root.
	BidiArtifact string

	// Tables holds one <name>.json per mandatory protocol under TablesDir.
	// Nil selects the embedded set.
	Tables    fs.FS
	TablesDir string

	// Now stamps the Bidi description. Nil selects time.Now.
	Now func() time.Time
}

// Registry is the unified protocol mapping plus its documentation metadata.
type Registry struct {
	tables       map[protocols.Name]protocols.Table
	descriptions map[protocols.Name]string
	bidiFound    bool
	generatedAt  time.Time
}

// Assemble builds the registry once. It fails if any mandatory table cannot
// be loaded or if the Bidi artifact exists but cannot be read or decoded.
// A missing Bidi artifact yields an empty webdriverBidi table.
func Assemble(ctx context.Context, opts Options) (*Registry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		static map[protocols.Name]protocols.Table
		err    error
	)
	if opts.Tables == nil {
		static, err = protocols.LoadStatic()
	} else {
		dir := opts.TablesDir
		if dir == "" {
			dir = protocols.DefaultTablesDir
		}
		static, err = protocols.LoadTables(opts.Tables, dir)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAssemble, err)
	}

	root := opts.Root
	if root == nil {
		root = os.DirFS(".")
	}
	artifact := opts.BidiArtifact
	if artifact == "" {
		artifact = DefaultBidiArtifact
	}
	bidi, found, err := protocols.ResolveOptional(root, artifact)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAssemble, err)
	}
	if !found {
		bidi = protocols.Table{}
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	generatedAt := now()

	tables := make(map[protocols.Name]protocols.Table, len(protocols.Names()))
	for _, name := range protocols.Mandatory() {
		tables[name] = static[name]
	}
	tables[protocols.WebDriverBidi] = bidi

	descriptions := map[protocols.Name]string{
		protocols.SauceLabs:     SauceAPIDescription,
		protocols.WebDriverBidi: BidiAPIDescription(generatedAt),
	}

	reg := &Registry{
		tables:       tables,
		descriptions: descriptions,
		bidiFound:    found,
		generatedAt:  generatedAt,
	}
	log.Info().
		Int("protocols", len(tables)).
		Bool("bidi_artifact", found).
		Msg("registry.Assemble ok")
	return reg, nil
}

// Protocol returns the table for name. Tables are shared and must be treated
// as read-only.
func (r *Registry) Protocol(name protocols.Name) (protocols.Table, bool) {
	t, ok := r.tables[name]
	return t, ok
}

// Protocols returns a copy of the name to table mapping.
func (r *Registry) Protocols() map[protocols.Name]protocols.Table {
	out := make(map[protocols.Name]protocols.Table, len(r.tables))
	for k, v := range r.tables {
		out[k] = v
	}
	return out
}

// Range calls fn for every protocol in declared order.
func (r *Registry) Range(fn func(protocols.Name, protocols.Table)) {
	for _, name := range protocols.Names() {
		fn(name, r.tables[name])
	}
}

// Description returns the API description for name. ok is false when the
// protocol has no description, which is distinct from an empty one.
func (r *Registry) Description(name protocols.Name) (string, bool) {
	text, ok := r.descriptions[name]
	return text, ok
}

// Descriptions returns a copy of the partial description map.
func (r *Registry) Descriptions() map[protocols.Name]string {
	out := make(map[protocols.Name]string, len(r.descriptions))
	for k, v := range r.descriptions {
		out[k] = v
	}
	return out
}

// BidiArtifactFound reports whether the Bidi table came from a generated artifact.
func (r *Registry) BidiArtifactFound() bool {
	return r.bidiFound
}

// GeneratedAt is the instant stamped into the Bidi description.
func (r *Registry) GeneratedAt() time.Time {
	return r.generatedAt
}

// MarshalJSON encodes the registry as one object keyed in declared order.
func (r *Registry) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range protocols.Names() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(name))
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.tables[name])
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
