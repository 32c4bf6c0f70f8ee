package session

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"

	"github.com/gogpu/stepmark"
	"github.com/gogpu/stepmark/internal/cache"
)

// DefaultCacheSize is how many decoded screenshots a Session keeps.
const DefaultCacheSize = 8

// Session is an open recording folder.
//
// The Document returned by Document holds the annotation state; step
// records (description, screenshot, extra keys) stay in the Session and
// follow their step through reorders. Session is an ImageSource whose
// BaseImage is safe for concurrent use, as FlattenBatch requires, as long
// as no step is added or removed at the same time.
type Session struct {
	dir  string
	name string
	doc  *stepmark.Document

	mu      sync.RWMutex
	entries map[stepmark.StepID]Entry

	images *cache.Cache[string, image.Image]
}

// Open loads dir/steps.json into a new Document built with opts.
func Open(dir string, opts ...stepmark.Option) (*Session, error) {
	m, err := LoadManifest(dir)
	if err != nil {
		return nil, err
	}
	s := &Session{
		dir:     dir,
		name:    m.ProjectName,
		doc:     stepmark.NewDocument(opts...),
		entries: make(map[stepmark.StepID]Entry, len(m.Steps)),
		images:  cache.New[string, image.Image](DefaultCacheSize),
	}
	for i, e := range m.Steps {
		id := s.doc.AddStep()
		if err := s.doc.LoadState(id, e.State); err != nil {
			return nil, fmt.Errorf("session: step %d: %w", i+1, err)
		}
		s.entries[id] = e
	}
	stepmark.Logger().Info("session: opened", "dir", dir, "project", m.ProjectName, "steps", len(m.Steps))
	return s, nil
}

// Dir returns the session folder.
func (s *Session) Dir() string { return s.dir }

// Document returns the document mirroring the session's steps.
func (s *Session) Document() *stepmark.Document { return s.doc }

// ProjectName returns the project name stored in the manifest.
func (s *Session) ProjectName() string { return s.name }

// SetProjectName changes the project name written by Sync.
func (s *Session) SetProjectName(name string) { s.name = name }

// Entry returns the step record of id. Its State is not kept current; use
// the Document for annotations.
func (s *Session) Entry(id stepmark.StepID) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	return e, ok
}

// Append adds a step at the end of the document. screenshot is a file name
// inside the session folder, or empty for a text-only step.
func (s *Session) Append(description, screenshot string) stepmark.StepID {
	e := Entry{Description: description}
	if screenshot != "" {
		e.Screenshot = &screenshot
	}
	id := s.doc.AddStep()
	s.mu.Lock()
	s.entries[id] = e
	s.mu.Unlock()
	return id
}

// SetDescription changes the description of a step.
func (s *Session) SetDescription(id stepmark.StepID, description string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return fmt.Errorf("%w: %s", stepmark.ErrUnknownStep, id)
	}
	e.Description = description
	s.entries[id] = e
	return nil
}

// BaseImage implements stepmark.ImageSource.
func (s *Session) BaseImage(id stepmark.StepID) (image.Image, error) {
	path, err := s.screenshotPath(id)
	if err != nil {
		return nil, err
	}
	if img, ok := s.images.Get(path); ok {
		return img, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := stepmark.DecodeImage(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	s.images.Set(path, img)
	return img, nil
}

// ImageSize returns the pixel size of a step's screenshot, as needed to
// open an Editor.
func (s *Session) ImageSize(id stepmark.StepID) (image.Point, error) {
	img, err := s.BaseImage(id)
	if err != nil {
		return image.Point{}, err
	}
	return img.Bounds().Size(), nil
}

var errUnsafePath = errors.New("session: screenshot path leaves the session folder")

func (s *Session) screenshotPath(id stepmark.StepID) (string, error) {
	e, ok := s.Entry(id)
	switch {
	case !ok:
		return "", fmt.Errorf("%w: %s", stepmark.ErrUnknownStep, id)
	case e.Screenshot == nil:
		return "", stepmark.ErrTextOnly
	case !filepath.IsLocal(*e.Screenshot):
		return "", fmt.Errorf("%w: %q", errUnsafePath, *e.Screenshot)
	}
	return filepath.Join(s.dir, *e.Screenshot), nil
}

// Manifest builds a manifest from the current document: steps in document
// order, renumbered from 1, each carrying its current annotation state.
// Records of steps removed from the document are dropped; steps added to
// the document directly become text-only records.
func (s *Session) Manifest() (*Manifest, error) {
	ids := s.doc.Steps()
	m := &Manifest{ProjectName: s.name, Steps: make([]Entry, 0, len(ids))}

	s.mu.Lock()
	defer s.mu.Unlock()
	live := make(map[stepmark.StepID]bool, len(ids))
	for i, id := range ids {
		st, err := s.doc.State(id)
		if err != nil {
			return nil, err
		}
		e := s.entries[id]
		e.Step = i + 1
		e.State = st
		s.entries[id] = e
		live[id] = true
		m.Steps = append(m.Steps, e)
	}
	for id := range s.entries {
		if !live[id] {
			delete(s.entries, id)
		}
	}
	return m, nil
}

// Release drops the decoded screenshots held by the session and logs how
// well the image cache served. The session stays usable; images are
// decoded again on demand.
func (s *Session) Release() {
	st := s.images.Stats()
	s.images.Clear()
	stepmark.Logger().Info("session: images released", "dir", s.dir,
		"cached", st.Len, "hits", st.Hits, "misses", st.Misses, "evictions", st.Evictions)
}

// Sync writes the document back to dir/steps.json.
func (s *Session) Sync() error {
	m, err := s.Manifest()
	if err != nil {
		return err
	}
	if err := m.Save(s.dir); err != nil {
		return err
	}
	stepmark.Logger().Debug("session: synced", "dir", s.dir, "steps", len(m.Steps))
	return nil
}
