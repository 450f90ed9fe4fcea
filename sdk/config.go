package sdk

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// SettingsFile is the per-plugin CUE settings sidecar, stored next to the
// plugin binary.
const SettingsFile = "plugin.cue"

// ConfigLoader loads a plugin's settings from its plugin.cue sidecar. The
// sidecar declares a top-level plugin struct whose settings field holds the
// author-facing configuration:
//
//	plugin: {
//		id: "edistance"
//		settings: {
//			normalize: true
//		}
//	}
type ConfigLoader struct {
	pluginDir string
	ctx       *cue.Context
}

// NewConfigLoader creates a configuration loader for the plugin rooted at
// pluginDir.
func NewConfigLoader(pluginDir string) *ConfigLoader {
	return &ConfigLoader{
		pluginDir: pluginDir,
		ctx:       cuecontext.New(),
	}
}

// LoadConfig decodes plugin.settings into config, which must be a pointer to
// a struct. Fields absent from the sidecar keep their current values, so
// callers pre-populate config with defaults. A missing sidecar is not an
// error.
func (cl *ConfigLoader) LoadConfig(config any) error {
	if config == nil {
		return fmt.Errorf("config struct cannot be nil")
	}
	v := reflect.ValueOf(config)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("config must be a pointer to a struct")
	}

	settings, err := cl.settingsValue()
	if err != nil || !settings.Exists() {
		return err
	}
	return decodeValue(settings, config)
}

// Settings returns the raw settings as a generic map. An absent sidecar or
// settings field yields an empty map.
func (cl *ConfigLoader) Settings() (map[string]any, error) {
	settings, err := cl.settingsValue()
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if !settings.Exists() {
		return out, nil
	}
	if err := decodeValue(settings, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (cl *ConfigLoader) settingsValue() (cue.Value, error) {
	path := filepath.Join(cl.pluginDir, SettingsFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cue.Value{}, nil
	}
	if err != nil {
		return cue.Value{}, fmt.Errorf("read %s: %w", path, err)
	}

	value := cl.ctx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("compile %s: %w", path, err)
	}
	return value.LookupPath(cue.ParsePath("plugin.settings")), nil
}

// decodeValue bridges a concrete CUE value into a Go value through JSON, the
// same shape settings travel in between host and plugin.
func decodeValue(value cue.Value, out any) error {
	encoded, err := value.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := json.Unmarshal(encoded, out); err != nil {
		return fmt.Errorf("decode settings: %w", err)
	}
	return nil
}
