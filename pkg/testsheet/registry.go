package testsheet

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/xuri/excelize/v2"
)

// Workbook is a registered in-memory document. All access to the file goes
// through Do, which serializes callers working on the same workbook.
type Workbook struct {
	ID string

	mu   sync.Mutex
	file *excelize.File
}

// Do runs fn with exclusive access to the workbook's file. It fails with
// ErrNotFound once the workbook has been deleted.
func (w *Workbook) Do(fn func(f *excelize.File) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return ErrNotFound
	}
	return fn(w.file)
}

func (w *Workbook) close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}

// Registry maps workbook ids to open workbooks. The registry lock only
// guards membership; document access is serialized per workbook.
type Registry struct {
	mu        sync.Mutex
	workbooks map[string]*Workbook
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{workbooks: make(map[string]*Workbook)}
}

// CreateFromTemplate loads the xlsx file at path and registers it as id.
func (r *Registry) CreateFromTemplate(id, path string) error {
	if r.Exists(id) {
		return ErrAlreadyExists
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrTemplateNotFound, path)
		}
		return fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidTemplate, path, err)
	}
	if err := r.add(id, f); err != nil {
		_ = f.Close()
		return err
	}
	return nil
}

// CreateBlank registers a new workbook with a single default sheet. Each
// setup func runs on the file before it is registered; if one fails, or the
// id is taken by then, the file is closed and nothing is registered.
func (r *Registry) CreateBlank(id string, setup ...func(f *excelize.File) error) error {
	if r.Exists(id) {
		return ErrAlreadyExists
	}
	f := excelize.NewFile()
	for _, fn := range setup {
		if err := fn(f); err != nil {
			_ = f.Close()
			return err
		}
	}
	if err := r.add(id, f); err != nil {
		_ = f.Close()
		return err
	}
	return nil
}

func (r *Registry) add(id string, f *excelize.File) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.workbooks[id]; ok {
		return ErrAlreadyExists
	}
	r.workbooks[id] = &Workbook{ID: id, file: f}
	return nil
}

// Get returns the workbook registered as id.
func (r *Registry) Get(id string) (*Workbook, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wb, ok := r.workbooks[id]
	if !ok {
		return nil, ErrNotFound
	}
	return wb, nil
}

// Exists reports whether id is registered.
func (r *Registry) Exists(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.workbooks[id]
	return ok
}

// Delete unregisters id and closes its file without saving it. It reports
// whether id was registered.
func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	wb, ok := r.workbooks[id]
	delete(r.workbooks, id)
	r.mu.Unlock()

	if ok {
		_ = wb.close()
	}
	return ok
}

// IDs returns the registered ids in sorted order.
func (r *Registry) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.workbooks))
	for id := range r.workbooks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Close closes and unregisters every workbook.
func (r *Registry) Close() error {
	r.mu.Lock()
	workbooks := r.workbooks
	r.workbooks = make(map[string]*Workbook)
	r.mu.Unlock()

	var errs []error
	for _, wb := range workbooks {
		if err := wb.close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", wb.ID, err))
		}
	}
	return errors.Join(errs...)
}
