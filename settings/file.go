package settings

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const colorKey = "todoColor"

// FileStore persists the settings in a YAML or TOML file, picked by the
// file extension.
type FileStore struct {
	path      string
	envPrefix string
}

var _ Store = (*FileStore)(nil)

// FileOption configures a FileStore.
type FileOption func(*FileStore)

// WithEnvPrefix lets environment variables override the file on Load, e.g.
// TODOMARK_TODOCOLOR for the prefix "TODOMARK_".
func WithEnvPrefix(prefix string) FileOption {
	return func(s *FileStore) {
		s.envPrefix = prefix
	}
}

func NewFileStore(path string, opts ...FileOption) *FileStore {
	s := &FileStore{path: path}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the settings file path.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) parser() koanf.Parser {
	if strings.EqualFold(filepath.Ext(s.path), ".toml") {
		return toml.Parser()
	}
	return yaml.Parser()
}

// Load layers the defaults, the settings file and the environment. A
// missing file is not an error.
func (s *FileStore) Load(ctx context.Context) (Settings, error) {
	if err := ctx.Err(); err != nil {
		return Defaults(), err
	}

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(map[string]any{colorKey: DefaultColor}, "."), nil); err != nil {
		return Defaults(), fmt.Errorf("loading defaults: %w", err)
	}

	if err := s.loadFile(k); err != nil {
		return Defaults(), err
	}

	if s.envPrefix != "" {
		err := k.Load(env.Provider(s.envPrefix, ".", func(key string) string {
			key = strings.TrimPrefix(key, s.envPrefix)
			if strings.EqualFold(key, colorKey) {
				return colorKey
			}
			return strings.ToLower(key)
		}), nil)
		if err != nil {
			return Defaults(), fmt.Errorf("loading env vars: %w", err)
		}
	}

	var st Settings
	if err := k.UnmarshalWithConf("", &st, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Defaults(), fmt.Errorf("decoding settings: %w", err)
	}

	st = st.Normalize()
	logger.Debug("settings loaded", "path", s.path, "color", st.TodoColor)
	return st, nil
}

func (s *FileStore) loadFile(k *koanf.Koanf) error {
	if _, err := os.Stat(s.path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading settings: %w", err)
	}

	if err := k.Load(file.Provider(s.path), s.parser()); err != nil {
		return fmt.Errorf("parsing settings %s: %w", s.path, err)
	}
	return nil
}

// Save writes the record atomically. Unknown keys already in the file are
// kept.
func (s *FileStore) Save(ctx context.Context, st Settings) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	k := koanf.New(".")
	if err := s.loadFile(k); err != nil {
		return err
	}
	if err := k.Load(confmap.Provider(map[string]any{colorKey: st.TodoColor}, "."), nil); err != nil {
		return fmt.Errorf("merging settings: %w", err)
	}

	data, err := k.Marshal(s.parser())
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}

	if err := writeAtomic(s.path, data); err != nil {
		return err
	}

	logger.Debug("settings saved", "path", s.path, "color", st.TodoColor)
	return nil
}

// writeAtomic writes to a temp file in the same directory, then renames it
// over path.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".todomark.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	return nil
}
