// SPDX-License-Identifier: MIT

package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"
)

// Snapshot file locking parameters.
const (
	lockTimeout       = 3 * time.Second
	lockRetryInterval = 100 * time.Millisecond
	snapshotVersion   = 1
)

// ErrLocked indicates the snapshot lock could not be acquired in time.
var ErrLocked = errors.New("storage: could not acquire snapshot lock")

// snapshotFile is the YAML document layout.
type snapshotFile struct {
	Version  int                      `yaml:"version"`
	Datasets map[string]snapshotArray `yaml:"datasets"`
}

type snapshotArray struct {
	Shape []int     `yaml:"shape,flow"`
	Data  []float64 `yaml:"data,flow"`
}

// withLock runs fn while holding the snapshot's sidecar lock, shared when
// shared is true and exclusive otherwise.
func withLock(path string, shared bool, fn func() error) error {
	lock := flock.New(path + ".lock")
	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()

	var (
		locked bool
		err    error
	)
	if shared {
		locked, err = lock.TryRLockContext(ctx, lockRetryInterval)
	} else {
		locked, err = lock.TryLockContext(ctx, lockRetryInterval)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLocked, err)
	}
	if !locked {
		return ErrLocked
	}
	defer func() { _ = lock.Unlock() }()

	return fn()
}

// ReadSnapshot decodes a YAML snapshot into a Memory source.
func ReadSnapshot(path string) (*Memory, error) {
	var doc snapshotFile
	err := withLock(path, true, func() error {
		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		return yaml.Unmarshal(raw, &doc)
	})
	if err != nil {
		return nil, fmt.Errorf("ReadSnapshot(%q): %w", path, err)
	}
	if doc.Version != snapshotVersion {
		return nil, fmt.Errorf("ReadSnapshot(%q): version %d: %w", path, doc.Version, ErrUnsupportedFormat)
	}

	mem := NewMemory()
	for name, arr := range doc.Datasets {
		if err = mem.Put(name, Array{Shape: arr.Shape, Data: arr.Data}); err != nil {
			return nil, fmt.Errorf("ReadSnapshot(%q): %w", path, err)
		}
	}

	return mem, nil
}

// WriteSnapshot copies the named datasets of src into a YAML snapshot at
// path, replacing any existing file.
func WriteSnapshot(path string, src Source, names []string) error {
	doc := snapshotFile{Version: snapshotVersion, Datasets: make(map[string]snapshotArray, len(names))}
	for _, name := range names {
		arr, err := src.Dataset(name)
		if err != nil {
			return fmt.Errorf("WriteSnapshot(%q): %w", path, err)
		}
		doc.Datasets[name] = snapshotArray{Shape: arr.Shape, Data: arr.Data}
	}

	raw, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("WriteSnapshot(%q): %w", path, err)
	}
	err = withLock(path, false, func() error {
		return os.WriteFile(path, raw, 0o644)
	})
	if err != nil {
		return fmt.Errorf("WriteSnapshot(%q): %w", path, err)
	}

	return nil
}
