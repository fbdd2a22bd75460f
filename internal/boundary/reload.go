package boundary

import (
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v2"

	"github.com/rhagen/cdnl/internal/core"
)

// ConfigWatcher watches a search-configuration file and applies incoming
// edits as a JSON merge patch against the last-applied document rather than
// a full re-parse, so a partial edit mid-save never reverts fields an
// editor hasn't finished writing yet. Used by `cdnl serve`.
type ConfigWatcher struct {
	filename string
	watcher  *fsnotify.Watcher
	lastJSON []byte
	onChange func(core.SearchConfig)
}

// NewConfigWatcher loads filename once to seed the baseline document and
// starts watching it for writes. onChange is invoked with the newly decoded
// config after every successful reload; a reload that fails to read,
// merge or decode is dropped silently and the watcher waits for the next
// write.
func NewConfigWatcher(filename string, onChange func(core.SearchConfig)) (*ConfigWatcher, error) {
	baseline, err := yamlToJSON(filename)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filename); err != nil {
		w.Close()
		return nil, err
	}

	cw := &ConfigWatcher{
		filename: filename,
		watcher:  w,
		lastJSON: baseline,
		onChange: onChange,
	}
	go cw.run()
	return cw, nil
}

func (cw *ConfigWatcher) run() {
	for event := range cw.watcher.Events {
		if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
			continue
		}
		if err := cw.reload(); err != nil {
			continue // transient editor write (e.g. a temp-file swap); wait for the next event
		}
	}
}

func (cw *ConfigWatcher) reload() error {
	next, err := yamlToJSON(cw.filename)
	if err != nil {
		return err
	}

	merged, err := jsonpatch.MergePatch(cw.lastJSON, next)
	if err != nil {
		return err
	}

	var m map[string]any
	if err := json.Unmarshal(merged, &m); err != nil {
		return err
	}
	cfg := core.DefaultSearchConfig
	if err := mapstructure.Decode(m, &cfg); err != nil {
		return err
	}

	cw.lastJSON = merged
	cw.onChange(cfg)
	return nil
}

// Close stops the underlying filesystem watch.
func (cw *ConfigWatcher) Close() error { return cw.watcher.Close() }

// yamlToJSON reads a YAML file and re-encodes it as JSON, since
// json-patch operates on JSON documents and yaml.v2 decodes maps as
// map[interface{}]interface{}.
func yamlToJSON(filename string) ([]byte, error) {
	var m map[string]any
	raw, err := readFile(filename)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parsing config %q: %w", filename, err)
	}
	return json.Marshal(stringifyKeys(m))
}

func readFile(filename string) ([]byte, error) {
	r, err := reader(filename, false)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	var buf []byte
	tmp := make([]byte, 4096)
	for {
		n, err := r.Read(tmp)
		buf = append(buf, tmp[:n]...)
		if err != nil {
			break
		}
	}
	return buf, nil
}

// stringifyKeys recursively converts map[interface{}]interface{} (yaml.v2's
// native map representation) into map[string]interface{} so it can be
// marshalled to JSON.
func stringifyKeys(v any) any {
	switch x := v.(type) {
	case map[interface{}]interface{}:
		m := make(map[string]any, len(x))
		for k, val := range x {
			m[fmt.Sprint(k)] = stringifyKeys(val)
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(x))
		for k, val := range x {
			m[k] = stringifyKeys(val)
		}
		return m
	case []interface{}:
		for i, e := range x {
			x[i] = stringifyKeys(e)
		}
		return x
	default:
		return x
	}
}
