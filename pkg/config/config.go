// Package config resolves the effective configuration for a sync run by
// deep-merging the global (per-user) document with the local (per-project)
// one. Object keys merge recursively; scalar and array leaves at a given
// path are replaced wholesale by the higher-precedence layer. Each
// resolved key remembers which layer supplied its winning value, for
// display and audit only.
package config

import (
	"os"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/getcodekit/codekit/pkg/errors"
)

// Layer identifies where a resolved value came from. Precedence order,
// lowest to highest: Default, Global, Local, Override.
type Layer string

const (
	LayerDefault  Layer = "default"
	LayerGlobal   Layer = "global"
	LayerLocal    Layer = "local"
	LayerOverride Layer = "override"
)

// FileName is the config document name in both scopes.
const FileName = "config.toml"

// Built-in defaults for customizable path settings.
var defaults = map[string]interface{}{
	"paths.docs":          "docs",
	"paths.plans":         "plans",
	"paths.skills":        "skills",
	"paths.rules":         "rules",
	"sync.backup":         true,
	"sync.conflictPolicy": "keep",
	"sync.workers":        0,
}

// Resolved is the merged configuration plus per-key provenance.
type Resolved struct {
	K *koanf.Koanf

	// Origins maps each leaf key to the layer that supplied its winning
	// value. It has no effect on merge behavior.
	Origins map[string]Layer
}

// Resolve merges defaults, the global config file, the local config file,
// and explicit caller overrides, in that order of increasing precedence.
// Missing files are fine; unreadable or malformed ones are errors.
func Resolve(globalPath, localPath string, overrides map[string]interface{}) (*Resolved, error) {
	merged := koanf.New(".")

	layers := []struct {
		layer Layer
		k     *koanf.Koanf
	}{
		{LayerDefault, koanf.New(".")},
		{LayerGlobal, koanf.New(".")},
		{LayerLocal, koanf.New(".")},
		{LayerOverride, koanf.New(".")},
	}

	if err := layers[0].k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load built-in defaults")
	}
	if err := loadFileIfPresent(layers[1].k, globalPath); err != nil {
		return nil, err
	}
	if err := loadFileIfPresent(layers[2].k, localPath); err != nil {
		return nil, err
	}
	if len(overrides) > 0 {
		if err := layers[3].k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	for _, l := range layers {
		if err := merged.Merge(l.k); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to merge %s layer", l.layer)
		}
	}

	origins := make(map[string]Layer)
	for _, key := range merged.Keys() {
		// Highest-precedence layer holding the key wins.
		for i := len(layers) - 1; i >= 0; i-- {
			if layers[i].k.Exists(key) {
				origins[key] = layers[i].layer
				break
			}
		}
	}

	return &Resolved{K: merged, Origins: origins}, nil
}

// PathSetting resolves a customizable path setting through the fallback
// chain: explicit argument, then the merged config (local over global
// over default).
func (r *Resolved) PathSetting(key, explicit string) string {
	if explicit != "" {
		return explicit
	}
	return r.K.String(key)
}

func loadFileIfPresent(k *koanf.Koanf, path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "failed to parse config at %s", path)
	}
	return nil
}
