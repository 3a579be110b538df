package models

// Field identifies one of the fourteen table columns.
type Field int

// Fields in column order (B through O).
const (
	FieldTraceabilityReqID Field = iota
	FieldTestCaseID
	FieldPriority
	FieldObjective
	FieldPrecondition
	FieldSteps
	FieldInputs
	FieldDesignMethodology
	FieldDependentTestCases
	FieldExpectedOutcome
	FieldActualOutcome
	FieldTestResult
	FieldRemarks
	FieldTrackBugID
)

// FieldCount is the number of table columns.
const FieldCount = 14

var fieldKeys = [FieldCount]string{
	"traceability_req_id",
	"test_case_id",
	"priority",
	"test_case_objective",
	"test_precondition",
	"test_steps",
	"test_inputs",
	"test_case_design_methodology",
	"dependent_test_cases",
	"expected_outcome",
	"actual_outcome",
	"test_result",
	"remarks",
	"track_bug_id",
}

var fieldLabels = [FieldCount]string{
	"Traceability Req-ID",
	"Test Case ID",
	"Priority",
	"Test Case Objective",
	"Test Precondition",
	"Test Steps",
	"Test Inputs",
	"Test Case Design Methodology",
	"Dependent Test Cases",
	"Expected Outcome",
	"Actual Outcome",
	"Test Result",
	"Remarks",
	"Track Bug ID",
}

// Key returns the snake_case name used by tool arguments.
func (f Field) Key() string {
	if f < 0 || int(f) >= FieldCount {
		return ""
	}
	return fieldKeys[f]
}

// Label returns the human-readable column name.
func (f Field) Label() string {
	if f < 0 || int(f) >= FieldCount {
		return ""
	}
	return fieldLabels[f]
}

func (f Field) String() string { return f.Key() }

// ParseField looks up a field by its Key.
func ParseField(key string) (Field, bool) {
	for i, k := range fieldKeys {
		if k == key {
			return Field(i), true
		}
	}
	return 0, false
}

// FieldUpdate replaces the value of a single field.
type FieldUpdate struct {
	Field Field
	Value string
}
