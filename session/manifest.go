// Package session reads and writes recording folders: a steps.json
// manifest next to the captured screenshots.
//
// A Session mirrors the manifest into a stepmark.Document, serves the
// screenshots as a stepmark.ImageSource and writes edits back with Sync.
package session

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gogpu/stepmark"
)

// ManifestFile is the manifest file name inside a session folder.
const ManifestFile = "steps.json"

// Manifest is the decoded steps.json of a session.
type Manifest struct {
	ProjectName string
	Steps       []Entry
}

// Entry is one step record. Keys this package does not know about are kept
// in Extra and written back unchanged.
type Entry struct {
	Step        int
	Description string
	Screenshot  *string // file name relative to the session folder; nil for text-only steps
	State       stepmark.StepState
	Extra       map[string]json.RawMessage
}

// Keys owned by Entry.
var entryKeys = []string{"step", "description", "screenshot", "objects", "crop"}

// UnmarshalJSON decodes a step record. Missing objects and crop mean an
// empty annotation state.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var known struct {
		Step        int     `json:"step"`
		Description string  `json:"description"`
		Screenshot  *string `json:"screenshot"`
	}
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}
	var st stepmark.StepState
	if err := json.Unmarshal(data, &st); err != nil {
		return err
	}

	for _, k := range entryKeys {
		delete(raw, k)
	}
	*e = Entry{
		Step:        known.Step,
		Description: known.Description,
		Screenshot:  known.Screenshot,
		State:       st,
	}
	if len(raw) > 0 {
		e.Extra = raw
	}
	return nil
}

// MarshalJSON encodes the record with its extra keys.
func (e Entry) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(e.Extra)+len(entryKeys))
	for k, v := range e.Extra {
		out[k] = v
	}

	state, err := json.Marshal(e.State)
	if err != nil {
		return nil, err
	}
	var stateKeys map[string]json.RawMessage
	if err := json.Unmarshal(state, &stateKeys); err != nil {
		return nil, err
	}
	for k, v := range stateKeys {
		out[k] = v
	}

	set := func(k string, v any) error {
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		out[k] = b
		return nil
	}
	if err := set("step", e.Step); err != nil {
		return nil, err
	}
	if err := set("description", e.Description); err != nil {
		return nil, err
	}
	if err := set("screenshot", e.Screenshot); err != nil {
		return nil, err
	}
	return json.Marshal(out)
}

// TextOnly reports whether the step has no screenshot.
func (e Entry) TextOnly() bool { return e.Screenshot == nil }

type manifestDoc struct {
	ProjectName string  `json:"project_name"`
	Steps       []Entry `json:"steps"`
}

// ParseManifest decodes a manifest. Both the current object form
// {"project_name": ..., "steps": [...]} and the older bare list of steps
// are accepted.
func ParseManifest(data []byte) (*Manifest, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var steps []Entry
		if err := json.Unmarshal(data, &steps); err != nil {
			return nil, fmt.Errorf("session: parse manifest: %w", err)
		}
		return &Manifest{Steps: steps}, nil
	}
	var doc manifestDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("session: parse manifest: %w", err)
	}
	return &Manifest{ProjectName: doc.ProjectName, Steps: doc.Steps}, nil
}

// LoadManifest reads dir/steps.json.
func LoadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	return ParseManifest(data)
}

// Marshal encodes the manifest in its object form, indented.
func (m *Manifest) Marshal() ([]byte, error) {
	steps := m.Steps
	if steps == nil {
		steps = []Entry{}
	}
	return json.MarshalIndent(manifestDoc{ProjectName: m.ProjectName, Steps: steps}, "", "    ")
}

// Save writes the manifest to dir/steps.json. The file is replaced
// atomically, so a failed save leaves the previous manifest intact.
func (m *Manifest) Save(dir string) error {
	data, err := m.Marshal()
	if err != nil {
		return fmt.Errorf("session: encode manifest: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ManifestFile+".*")
	if err != nil {
		return fmt.Errorf("session: save manifest: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // gone after a successful rename

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("session: save manifest: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("session: save manifest: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("session: save manifest: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(dir, ManifestFile)); err != nil {
		return fmt.Errorf("session: save manifest: %w", err)
	}
	return nil
}
