package testsheet

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"pgregory.net/rapid"
)

func TestRegistryCreateBlank(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := NewRegistry()
		defer r.Close()

		id := rapid.StringMatching(`[A-Za-z0-9_-]{1,20}`).Draw(t, "id")
		if r.Exists(id) {
			t.Fatalf("fresh registry already has %q", id)
		}
		if err := r.CreateBlank(id); err != nil {
			t.Fatalf("CreateBlank(%q): %v", id, err)
		}
		if !r.Exists(id) {
			t.Fatalf("%q not registered", id)
		}
		if err := r.CreateBlank(id); err != ErrAlreadyExists {
			t.Fatalf("second CreateBlank(%q) = %v, expected ErrAlreadyExists", id, err)
		}
	})
}

func TestRegistryCreateBlankInit(t *testing.T) {
	r := NewRegistry()
	defer r.Close()

	var seen []string
	err := r.CreateBlank("wb", func(f *excelize.File) error {
		assert.False(t, r.Exists("wb"), "registered before init finished")
		seen = f.GetSheetList()
		return f.SetSheetName(seen[0], "Setup Done")
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Sheet1"}, seen)

	wb, err := r.Get("wb")
	require.NoError(t, err)
	require.NoError(t, wb.Do(func(f *excelize.File) error {
		assert.Equal(t, []string{"Setup Done"}, f.GetSheetList())
		return nil
	}))

	called := false
	err = r.CreateBlank("wb", func(*excelize.File) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrAlreadyExists)
	assert.False(t, called)

	boom := errors.New("boom")
	err = r.CreateBlank("broken", func(*excelize.File) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, r.Exists("broken"))
}

func TestRegistryCreateFromTemplate(t *testing.T) {
	dir := t.TempDir()

	valid := filepath.Join(dir, "template.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "template"))
	require.NoError(t, f.SaveAs(valid))
	require.NoError(t, f.Close())

	invalid := filepath.Join(dir, "broken.xlsx")
	require.NoError(t, os.WriteFile(invalid, []byte("not a zip archive"), 0o644))

	r := NewRegistry()
	defer r.Close()

	assert.ErrorIs(t, r.CreateFromTemplate("missing", filepath.Join(dir, "nope.xlsx")), ErrTemplateNotFound)
	assert.ErrorIs(t, r.CreateFromTemplate("broken", invalid), ErrInvalidTemplate)
	assert.False(t, r.Exists("missing"))
	assert.False(t, r.Exists("broken"))

	require.NoError(t, r.CreateFromTemplate("wb", valid))
	assert.ErrorIs(t, r.CreateFromTemplate("wb", valid), ErrAlreadyExists)

	wb, err := r.Get("wb")
	require.NoError(t, err)
	require.NoError(t, wb.Do(func(f *excelize.File) error {
		v, err := f.GetCellValue("Sheet1", "A1")
		assert.Equal(t, "template", v)
		return err
	}))
}

func TestRegistryGetMissing(t *testing.T) {
	r := NewRegistry()
	_, err := r.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegistryDelete(t *testing.T) {
	r := NewRegistry()
	defer r.Close()

	assert.False(t, r.Delete("nope"))

	require.NoError(t, r.CreateBlank("wb"))
	wb, err := r.Get("wb")
	require.NoError(t, err)

	assert.True(t, r.Delete("wb"))
	assert.False(t, r.Exists("wb"))

	// A handle obtained before the delete no longer reaches the document.
	err = wb.Do(func(*excelize.File) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)

	// The id can be reused.
	require.NoError(t, r.CreateBlank("wb"))
}

func TestRegistryIDsAndClose(t *testing.T) {
	r := NewRegistry()
	for _, id := range []string{"b", "c", "a"} {
		require.NoError(t, r.CreateBlank(id))
	}
	assert.Equal(t, []string{"a", "b", "c"}, r.IDs())

	require.NoError(t, r.Close())
	assert.Empty(t, r.IDs())
}

func TestRegistryConcurrentCreate(t *testing.T) {
	r := NewRegistry()
	defer r.Close()

	var created atomic.Int32
	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if r.CreateBlank("shared") == nil {
				created.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), created.Load())
	assert.Equal(t, []string{"shared"}, r.IDs())
}
