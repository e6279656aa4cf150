package convert

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"holoscene/internal/scene"
	"holoscene/internal/utils"
)

// PackVersion is written at the start of every environment pack.
const PackVersion = "HSPK0001"

// PackEntry locates one file inside a pack. Offsets are relative to the end
// of the entry table.
type PackEntry struct {
	Name   string
	Offset uint32
	Size   uint32
}

// Pack is an in-memory environment bundle: a little-endian version string,
// an entry count, the entry table and then the concatenated payloads.
type Pack struct {
	Version string
	Entries []PackEntry
	data    []byte
}

const maxPackEntries = 1 << 16

func readPackString(r io.Reader) (string, error) {
	var size uint32
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return "", err
	}
	if size > 1<<16 {
		return "", fmt.Errorf("pack string length %d too large", size)
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func writePackString(w io.Writer, s string) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func ReadPack(r io.Reader) (*Pack, error) {
	version, err := readPackString(r)
	if err != nil {
		return nil, fmt.Errorf("reading pack version: %w", err)
	}
	if !strings.HasPrefix(version, "HSPK") {
		return nil, fmt.Errorf("not an environment pack (version %q)", version)
	}
	utils.Debug("Pack: version %s", version)

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("reading pack entry count: %w", err)
	}

	if count > maxPackEntries {
		return nil, fmt.Errorf("pack entry count %d too large", count)
	}

	var entries []PackEntry
	for i := uint32(0); i < count; i++ {
		name, err := readPackString(r)
		if err != nil {
			return nil, fmt.Errorf("reading pack entry %d: %w", i, err)
		}
		var loc [2]uint32
		if err := binary.Read(r, binary.LittleEndian, &loc); err != nil {
			return nil, fmt.Errorf("reading pack entry %s: %w", name, err)
		}
		entries = append(entries, PackEntry{Name: name, Offset: loc[0], Size: loc[1]})
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading pack data: %w", err)
	}
	for _, e := range entries {
		if uint64(e.Offset)+uint64(e.Size) > uint64(len(data)) {
			return nil, fmt.Errorf("pack entry %s overruns data (%d+%d > %d)", e.Name, e.Offset, e.Size, len(data))
		}
	}
	utils.Debug("Pack: %d entries, %d bytes", len(entries), len(data))
	return &Pack{Version: version, Entries: entries, data: data}, nil
}

func OpenPack(path string) (*Pack, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := ReadPack(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// WritePack bundles files in name order.
func WritePack(w io.Writer, files map[string][]byte) error {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	if err := writePackString(w, PackVersion); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(names))); err != nil {
		return err
	}
	var offset uint32
	for _, name := range names {
		if err := writePackString(w, name); err != nil {
			return err
		}
		size := uint32(len(files[name]))
		if err := binary.Write(w, binary.LittleEndian, [2]uint32{offset, size}); err != nil {
			return err
		}
		offset += size
	}
	for _, name := range names {
		if _, err := w.Write(files[name]); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pack) Names() []string {
	names := make([]string, len(p.Entries))
	for i, e := range p.Entries {
		names[i] = e.Name
	}
	return names
}

func (p *Pack) File(name string) ([]byte, error) {
	for _, e := range p.Entries {
		if e.Name == name {
			return p.data[e.Offset : e.Offset+e.Size], nil
		}
	}
	return nil, fmt.Errorf("pack has no entry %q", name)
}

// Environment decodes the named entry. A name without an extension also
// matches name.json, name.yaml and name.yml.
func (p *Pack) Environment(name string) (scene.Environment, error) {
	candidates := []string{name}
	if filepath.Ext(name) == "" {
		candidates = append(candidates, name+".json", name+".yaml", name+".yml")
	}
	for _, c := range candidates {
		if data, err := p.File(c); err == nil {
			return DecodeEnvironment(c, data)
		}
	}
	return scene.Environment{}, fmt.Errorf("pack has no environment %q", name)
}

// DecodeEnvironment parses an environment descriptor, choosing YAML or JSON
// by the file extension.
func DecodeEnvironment(name string, data []byte) (scene.Environment, error) {
	var env scene.Environment
	var err error
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &env)
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		err = dec.Decode(&env)
	}
	if err != nil {
		return scene.Environment{}, fmt.Errorf("decoding environment %s: %w", name, err)
	}
	if env.ID == "" {
		env.ID = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	}
	return env, nil
}

func LoadEnvironment(path string) (scene.Environment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return scene.Environment{}, err
	}
	return DecodeEnvironment(path, data)
}
