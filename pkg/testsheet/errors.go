package testsheet

import (
	"errors"
	"fmt"
)

// ErrAlreadyExists indicates a workbook id is already registered.
var ErrAlreadyExists = errors.New("workbook already exists")

// ErrNotFound indicates a workbook id is not registered.
var ErrNotFound = errors.New("workbook not found")

// ErrTemplateNotFound indicates the template path does not exist.
var ErrTemplateNotFound = errors.New("template not found")

// ErrInvalidTemplate indicates the template or workbook file could not be
// read as an xlsx document.
var ErrInvalidTemplate = errors.New("invalid xlsx template")

// ErrFileNotFound indicates a workbook file to open does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrSheetNotFound indicates the requested sheet is not in the workbook.
var ErrSheetNotFound = errors.New("sheet not found")

// ErrTestCaseNotFound indicates no row in the data window has the id.
var ErrTestCaseNotFound = errors.New("test case not found")

// ErrInvalidTestCase indicates a batch entry could not be decoded.
var ErrInvalidTestCase = errors.New("invalid test case")

// OperationError records which operation, workbook and sheet failed.
type OperationError struct {
	Op         string
	WorkbookID string
	SheetName  string // empty for workbook-level operations
	Err        error
}

func (e *OperationError) Error() string {
	if e.SheetName != "" {
		return fmt.Sprintf("%s on workbook %q, sheet %q: %v", e.Op, e.WorkbookID, e.SheetName, e.Err)
	}
	return fmt.Sprintf("%s on workbook %q: %v", e.Op, e.WorkbookID, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, workbookID, sheetName string, err error) *OperationError {
	return &OperationError{
		Op:         op,
		WorkbookID: workbookID,
		SheetName:  sheetName,
		Err:        err,
	}
}
