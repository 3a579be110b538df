package testsheet

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/google/uuid"
	"github.com/ukaji3/testsheet-go/pkg/testsheet/layout"
	"github.com/ukaji3/testsheet-go/pkg/testsheet/models"
	"github.com/ukaji3/testsheet-go/pkg/testsheet/textfmt"
	"github.com/xuri/excelize/v2"
)

// Service implements the workbook and test case operations on top of a
// Registry. Every operation that touches a document holds that workbook's
// lock for its whole duration, so concurrent calls on one workbook never
// interleave their cell writes.
type Service struct {
	registry *Registry
	table    layout.Table
	opts     Options
	logger   *slog.Logger
}

// NewService creates a Service. A nil logger discards log output.
func NewService(registry *Registry, opts Options, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		registry: registry,
		table:    layout.Default(),
		opts:     opts,
		logger:   logger,
	}
}

// Table returns the table layout the service writes to.
func (s *Service) Table() layout.Table {
	return s.table
}

// CreateResult describes how CreateWorkbook built the workbook.
type CreateResult struct {
	ID string
	// Template is the template path that was requested or configured.
	Template string
	// FromTemplate is set when the workbook was loaded from Template.
	FromTemplate bool
}

// TemplateMissing reports whether a template was asked for but not found,
// so a blank sheet was generated instead.
func (r CreateResult) TemplateMissing() bool {
	return r.Template != "" && !r.FromTemplate
}

// CreateWorkbook registers a new workbook. It loads templatePath (or the
// configured default template) when that file exists, and otherwise builds
// a validation testing sheet from scratch. An empty id gets a random one.
func (s *Service) CreateWorkbook(id, templatePath string) (CreateResult, error) {
	const op = "create workbook"
	if id == "" {
		id = uuid.NewString()
	}
	if templatePath == "" {
		templatePath = s.opts.DefaultTemplatePath
	}
	res := CreateResult{ID: id, Template: templatePath}

	if templatePath != "" && fileExists(templatePath) {
		if err := s.registry.CreateFromTemplate(id, templatePath); err != nil {
			return res, NewOperationError(op, id, "", err)
		}
		res.FromTemplate = true
		s.logger.Info("workbook created from template", "workbook", id, "template", templatePath)
		return res, nil
	}

	err := s.registry.CreateBlank(id, func(f *excelize.File) error {
		return s.table.Setup(f, f.GetSheetName(f.GetActiveSheetIndex()))
	})
	if err != nil {
		return res, NewOperationError(op, id, "", err)
	}
	s.logger.Info("workbook created", "workbook", id, "template_missing", res.TemplateMissing())
	return res, nil
}

// OpenWorkbook loads an existing xlsx file as id.
func (s *Service) OpenWorkbook(id, path string) error {
	const op = "open workbook"
	if s.registry.Exists(id) {
		return NewOperationError(op, id, "", ErrAlreadyExists)
	}
	if !fileExists(path) {
		return NewOperationError(op, id, "", fmt.Errorf("%w: %s", ErrFileNotFound, path))
	}
	if err := s.registry.CreateFromTemplate(id, path); err != nil {
		return NewOperationError(op, id, "", err)
	}
	s.logger.Info("workbook opened", "workbook", id, "path", path)
	return nil
}

// AddTestCase normalizes tc and writes it to the next free row of sheet,
// returning that row. An unknown result is stored as Not Tested. A full
// window does not fail; the row after the window is used.
func (s *Service) AddTestCase(id, sheet string, tc models.TestCase) (int, error) {
	sheet = s.sheetOrDefault(sheet)
	var row int
	err := s.withSheet("add test case", id, sheet, func(doc layout.Document) error {
		var err error
		row, err = s.appendRow(doc, sheet, tc)
		return err
	})
	return row, err
}

func (s *Service) appendRow(doc layout.Document, sheet string, tc models.TestCase) (int, error) {
	row, err := s.table.NextAvailableRow(doc, sheet)
	if err != nil {
		return 0, err
	}
	if row > s.table.EndRow() {
		s.logger.Warn("test table window is full, writing past it",
			"sheet", sheet, "row", row, "capacity", s.table.Capacity)
	}
	if _, err := s.table.WriteRow(doc, sheet, row, s.normalize(tc)); err != nil {
		return 0, err
	}
	return row, nil
}

// normalize coerces the result and wraps every value for display.
func (s *Service) normalize(tc models.TestCase) [models.FieldCount]string {
	tc.Result = s.coerceResult(string(tc.Result), tc.TestCaseID)
	values := tc.Values()
	for i, v := range values {
		if models.Field(i) == models.FieldSteps {
			values[i] = textfmt.WrapSteps(v)
		} else {
			values[i] = textfmt.WrapLong(v, s.opts.wrapWidth())
		}
	}
	return values
}

func (s *Service) coerceResult(v, testCaseID string) models.TestResult {
	r, ok := models.ParseTestResult(v)
	if !ok {
		s.logger.Debug("test result defaulted", "test_case", testCaseID, "value", v, "default", r)
	}
	return r
}

// BatchFailure describes one batch entry that was skipped.
type BatchFailure struct {
	Index      int    `json:"index"`
	TestCaseID string `json:"test_case_id,omitempty"`
	Error      string `json:"error"`
}

// BatchResult reports how many entries were added and which were skipped.
type BatchResult struct {
	Added    int            `json:"added"`
	Failures []BatchFailure `json:"failures,omitempty"`
}

// AddTestCases adds each entry like AddTestCase. An entry that cannot be
// decoded or written is logged and skipped; the rest of the batch goes on.
func (s *Service) AddTestCases(id, sheet string, entries []map[string]any) (BatchResult, error) {
	sheet = s.sheetOrDefault(sheet)
	var res BatchResult
	err := s.withSheet("add test cases", id, sheet, func(doc layout.Document) error {
		for i, entry := range entries {
			tc, err := DecodeTestCase(entry)
			if err == nil {
				_, err = s.appendRow(doc, sheet, tc)
			}
			if err != nil {
				s.logger.Warn("skipping test case", "workbook", id, "sheet", sheet,
					"index", i, "test_case", entryID(entry), "error", err)
				res.Failures = append(res.Failures, BatchFailure{Index: i, TestCaseID: entryID(entry), Error: err.Error()})
				continue
			}
			res.Added++
		}
		return nil
	})
	return res, err
}

// UpdateTestCase overwrites the given fields of the row whose Test Case ID
// is exactly testCaseID and returns the fields written. Values are stored
// as given, except that an unknown result becomes Not Tested.
func (s *Service) UpdateTestCase(id, sheet, testCaseID string, updates []models.FieldUpdate) ([]models.Field, error) {
	sheet = s.sheetOrDefault(sheet)
	var changed []models.Field
	err := s.withSheet("update test case", id, sheet, func(doc layout.Document) error {
		row, err := s.table.FindRow(doc, sheet, testCaseID)
		if errors.Is(err, layout.ErrRowNotFound) {
			return fmt.Errorf("%w: %q", ErrTestCaseNotFound, testCaseID)
		}
		if err != nil {
			return err
		}
		for _, u := range updates {
			value := u.Value
			if u.Field == models.FieldTestResult {
				value = string(s.coerceResult(value, testCaseID))
			}
			if err := s.table.SetField(doc, sheet, row, u.Field, value); err != nil {
				return err
			}
			changed = append(changed, u.Field)
		}
		return nil
	})
	return changed, err
}

// ListTestCases returns every test case in the data window of sheet.
func (s *Service) ListTestCases(id, sheet string) ([]models.Record, error) {
	sheet = s.sheetOrDefault(sheet)
	var records []models.Record
	err := s.withSheet("list test cases", id, sheet, func(doc layout.Document) error {
		var err error
		records, err = s.table.Records(doc, sheet)
		return err
	})
	return records, err
}

// Summarize counts the test cases of sheet by result.
func (s *Service) Summarize(id, sheet string) (models.Summary, error) {
	sheet = s.sheetOrDefault(sheet)
	var summary models.Summary
	err := s.withSheet("summarize", id, sheet, func(doc layout.Document) error {
		var err error
		summary, err = s.table.Summarize(doc, sheet)
		return err
	})
	return summary, err
}

// UpdateDetails overwrites the testing details block of sheet.
func (s *Service) UpdateDetails(id, sheet string, d models.Details) error {
	sheet = s.sheetOrDefault(sheet)
	return s.withSheet("update testing details", id, sheet, func(doc layout.Document) error {
		return layout.WriteDetails(doc, sheet, d)
	})
}

// GetDetails reads the testing details block of sheet.
func (s *Service) GetDetails(id, sheet string) (models.Details, error) {
	sheet = s.sheetOrDefault(sheet)
	var d models.Details
	err := s.withSheet("get testing details", id, sheet, func(doc layout.Document) error {
		var err error
		d, err = layout.ReadDetails(doc, sheet)
		return err
	})
	return d, err
}

// SaveWorkbook writes the workbook to path.
func (s *Service) SaveWorkbook(id, path string) error {
	err := s.withWorkbook("save workbook", id, func(f *excelize.File) error {
		return f.SaveAs(path)
	})
	if err == nil {
		s.logger.Info("workbook saved", "workbook", id, "path", path)
	}
	return err
}

// WorkbookInfo describes the sheets of a workbook and, when it has a
// validation sheet, how many test cases it holds.
func (s *Service) WorkbookInfo(id string) (models.WorkbookInfo, error) {
	info := models.WorkbookInfo{ID: id}
	err := s.withWorkbook("get workbook info", id, func(f *excelize.File) error {
		info.Sheets = f.GetSheetList()
		info.PrintAreas = layout.PrintAreas(f)
		if !slices.Contains(info.Sheets, s.table.SheetName) {
			return nil
		}
		summary, err := s.table.Summarize(f, s.table.SheetName)
		if err != nil {
			return err
		}
		info.TestCount = &summary.Total
		info.NextRow = &summary.NextRow
		return nil
	})
	return info, err
}

// DeleteWorkbook drops a workbook from memory without saving it.
func (s *Service) DeleteWorkbook(id string) error {
	if !s.registry.Delete(id) {
		return NewOperationError("delete workbook", id, "", ErrNotFound)
	}
	s.logger.Info("workbook deleted", "workbook", id)
	return nil
}

// ListWorkbooks returns the ids of all open workbooks.
func (s *Service) ListWorkbooks() []string {
	return s.registry.IDs()
}

func (s *Service) sheetOrDefault(sheet string) string {
	if sheet == "" {
		return s.table.SheetName
	}
	return sheet
}

func (s *Service) withWorkbook(op, id string, fn func(f *excelize.File) error) error {
	wb, err := s.registry.Get(id)
	if err != nil {
		return NewOperationError(op, id, "", err)
	}
	if err := wb.Do(fn); err != nil {
		return NewOperationError(op, id, "", err)
	}
	return nil
}

func (s *Service) withSheet(op, id, sheet string, fn func(doc layout.Document) error) error {
	wb, err := s.registry.Get(id)
	if err != nil {
		return NewOperationError(op, id, "", err)
	}
	err = wb.Do(func(f *excelize.File) error {
		if !slices.Contains(f.GetSheetList(), sheet) {
			return ErrSheetNotFound
		}
		return fn(f)
	})
	if err != nil {
		return NewOperationError(op, id, sheet, err)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
