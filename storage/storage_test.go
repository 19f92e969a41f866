// SPDX-License-Identifier: MIT

package storage_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/koehnlab/gtensor/basis"
	"github.com/koehnlab/gtensor/matrix"
	"github.com/koehnlab/gtensor/spin"
	"github.com/koehnlab/gtensor/storage"
)

// fixture builds a source with two manifolds (S=1 ×1, S=1/2 ×2) and a
// stacked complex dataset.
func fixture(t *testing.T) *storage.Memory {
	t.Helper()
	mem := storage.NewMemory()
	require.NoError(t, mem.PutMetadata([]float64{1, 0.5}, []int{1, 2}))

	m, err := matrix.NewDenseFrom(2, 2, []complex128{1, 2i, -2i, 3})
	require.NoError(t, err)
	require.NoError(t, mem.PutComplex("LX", m))

	return mem
}

func TestMemory_DatasetIsCopy(t *testing.T) {
	mem := storage.NewMemory()
	require.NoError(t, mem.Put("A", storage.Array{Shape: []int{2}, Data: []float64{1, 2}}))

	arr, err := mem.Dataset("A")
	require.NoError(t, err)
	arr.Data[0] = 99

	again, err := mem.Dataset("A")
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2}, again.Data)
}

func TestMemory_MissingDataset(t *testing.T) {
	_, err := storage.NewMemory().Dataset("DMX")
	require.ErrorIs(t, err, storage.ErrMissingDataset)
}

func TestMemory_PutRejectsBadShape(t *testing.T) {
	mem := storage.NewMemory()
	err := mem.Put("A", storage.Array{Shape: []int{2, 2}, Data: []float64{1, 2, 3}})
	require.ErrorIs(t, err, storage.ErrBadShape)

	err = mem.Put("B", storage.Array{Shape: []int{-1}, Data: nil})
	require.ErrorIs(t, err, storage.ErrBadShape)
}

func TestMemory_NamesSorted(t *testing.T) {
	require.Equal(t, []string{"LX", storage.DatasetSpatialStates, storage.DatasetSpinQNs}, fixture(t).Names())
}

func TestReadMetadata(t *testing.T) {
	spins, spatial, err := storage.ReadMetadata(fixture(t))
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, spatial)
	require.Len(t, spins, 2)
	require.Equal(t, 2, spins[0].Twice())
	require.Equal(t, 1, spins[1].Twice())
}

func TestReadMetadata_Errors(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		_, _, err := storage.ReadMetadata(storage.NewMemory())
		require.ErrorIs(t, err, storage.ErrMissingDataset)
	})
	t.Run("fractional count", func(t *testing.T) {
		mem := storage.NewMemory()
		require.NoError(t, mem.Put(storage.DatasetSpinQNs, storage.Array{Shape: []int{1}, Data: []float64{0.5}}))
		require.NoError(t, mem.Put(storage.DatasetSpatialStates, storage.Array{Shape: []int{1}, Data: []float64{1.5}}))
		_, _, err := storage.ReadMetadata(mem)
		require.ErrorIs(t, err, storage.ErrBadShape)
	})
	t.Run("not a vector", func(t *testing.T) {
		mem := storage.NewMemory()
		require.NoError(t, mem.Put(storage.DatasetSpinQNs, storage.Array{Shape: []int{1, 1}, Data: []float64{0.5}}))
		_, _, err := storage.ReadMetadata(mem)
		require.ErrorIs(t, err, storage.ErrBadShape)
	})
	t.Run("bad spin", func(t *testing.T) {
		mem := storage.NewMemory()
		require.NoError(t, mem.PutMetadata([]float64{0.3}, []int{1}))
		_, _, err := storage.ReadMetadata(mem)
		require.ErrorIs(t, err, spin.ErrInvalidSpin)
	})
}

func TestReadLayout(t *testing.T) {
	l, err := storage.ReadLayout(fixture(t))
	require.NoError(t, err)
	require.Equal(t, 2, l.Len())
	require.Equal(t, 3, l.SpatialDim())
	require.Equal(t, 5, l.ZerothDim())
	require.Equal(t, 7, l.ProductDim())

	mem := storage.NewMemory()
	require.NoError(t, mem.PutMetadata([]float64{0.5, 1}, []int{1, 1}))
	_, err = storage.ReadLayout(mem)
	require.ErrorIs(t, err, basis.ErrInvalidLayout)
}

func TestReadComplex(t *testing.T) {
	m, err := storage.ReadComplex(fixture(t), "LX")
	require.NoError(t, err)
	v, err := m.At(0, 1)
	require.NoError(t, err)
	require.Equal(t, 2i, v)

	_, err = storage.ReadComplex(fixture(t), storage.DatasetSpinQNs)
	require.ErrorIs(t, err, matrix.ErrBadLayout)
}

func TestSnapshot_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	src := fixture(t)
	require.NoError(t, storage.WriteSnapshot(path, src, src.Names()))

	got, err := storage.ReadSnapshot(path)
	require.NoError(t, err)
	require.Equal(t, src.Names(), got.Names())
	for _, name := range src.Names() {
		want, err := src.Dataset(name)
		require.NoError(t, err)
		have, err := got.Dataset(name)
		require.NoError(t, err)
		require.Equal(t, want, have, name)
	}
}

func TestSnapshot_MissingSourceDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	err := storage.WriteSnapshot(path, fixture(t), []string{"DMZ"})
	require.ErrorIs(t, err, storage.ErrMissingDataset)
	_, statErr := os.Stat(path)
	require.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestSnapshot_Rejects(t *testing.T) {
	dir := t.TempDir()

	wrongVersion := filepath.Join(dir, "v2.yaml")
	require.NoError(t, os.WriteFile(wrongVersion, []byte("version: 2\ndatasets: {}\n"), 0o644))
	_, err := storage.ReadSnapshot(wrongVersion)
	require.ErrorIs(t, err, storage.ErrUnsupportedFormat)

	badShape := filepath.Join(dir, "bad.yaml")
	doc := "version: 1\ndatasets:\n  A:\n    shape: [3]\n    data: [1, 2]\n"
	require.NoError(t, os.WriteFile(badShape, []byte(doc), 0o644))
	_, err = storage.ReadSnapshot(badShape)
	require.ErrorIs(t, err, storage.ErrBadShape)

	_, err = storage.ReadSnapshot(filepath.Join(dir, "absent.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpen_UnsupportedExtension(t *testing.T) {
	_, err := storage.Open("run.txt")
	require.ErrorIs(t, err, storage.ErrUnsupportedFormat)
}

func TestWith(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yml")
	src := fixture(t)
	require.NoError(t, storage.WriteSnapshot(path, src, src.Names()))

	var dim int
	err := storage.With(path, func(s storage.Source) error {
		l, err := storage.ReadLayout(s)
		if err != nil {
			return err
		}
		dim = l.ProductDim()

		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 7, dim)

	sentinel := errors.New("boom")
	err = storage.With(path, func(storage.Source) error { return sentinel })
	require.ErrorIs(t, err, sentinel)

	called := false
	err = storage.With(filepath.Join(t.TempDir(), "none.bin"), func(storage.Source) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, storage.ErrUnsupportedFormat)
	require.False(t, called)
}

func TestSynchronized(t *testing.T) {
	src := storage.Synchronized(fixture(t))
	require.Same(t, src, storage.Synchronized(src))

	done := make(chan error, 8)
	for i := 0; i < cap(done); i++ {
		go func() {
			_, err := storage.ReadComplex(src, "LX")
			done <- err
		}()
	}
	for i := 0; i < cap(done); i++ {
		require.NoError(t, <-done)
	}
	require.NoError(t, src.Close())
}
