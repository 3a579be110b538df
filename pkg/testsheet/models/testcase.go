// Package models defines the records stored in and read from test sheets.
package models

// TestResult is the outcome recorded in the Test Result column.
type TestResult string

const (
	// ResultNotTested marks a test case that has not been executed.
	ResultNotTested TestResult = "Not Tested"
	// ResultPassed marks a passing test case.
	ResultPassed TestResult = "Passed"
	// ResultFailed marks a failing test case.
	ResultFailed TestResult = "Failed"
)

// TestResults lists the allowed results in drop-down order.
var TestResults = []TestResult{ResultNotTested, ResultPassed, ResultFailed}

// ParseTestResult returns the matching result and true, or ResultNotTested
// and false when s is not one of the allowed values.
func ParseTestResult(s string) (TestResult, bool) {
	for _, r := range TestResults {
		if string(r) == s {
			return r, true
		}
	}
	return ResultNotTested, false
}

// TestCase is one row of the test table.
type TestCase struct {
	TraceabilityReqID  string     `json:"traceability_req_id"`
	TestCaseID         string     `json:"test_case_id"`
	Priority           string     `json:"priority"`
	Objective          string     `json:"test_case_objective"`
	Precondition       string     `json:"test_precondition"`
	Steps              string     `json:"test_steps"`
	Inputs             string     `json:"test_inputs"`
	DesignMethodology  string     `json:"test_case_design_methodology"`
	DependentTestCases string     `json:"dependent_test_cases"`
	ExpectedOutcome    string     `json:"expected_outcome"`
	ActualOutcome      string     `json:"actual_outcome"`
	Result             TestResult `json:"test_result"`
	Remarks            string     `json:"remarks"`
	TrackBugID         string     `json:"track_bug_id"`
}

// Values returns the fields in column order.
func (tc TestCase) Values() [FieldCount]string {
	return [FieldCount]string{
		tc.TraceabilityReqID,
		tc.TestCaseID,
		tc.Priority,
		tc.Objective,
		tc.Precondition,
		tc.Steps,
		tc.Inputs,
		tc.DesignMethodology,
		tc.DependentTestCases,
		tc.ExpectedOutcome,
		tc.ActualOutcome,
		string(tc.Result),
		tc.Remarks,
		tc.TrackBugID,
	}
}

// TestCaseFromValues builds a TestCase from column-ordered values.
// The result column is stored as read, without coercion.
func TestCaseFromValues(v [FieldCount]string) TestCase {
	return TestCase{
		TraceabilityReqID:  v[FieldTraceabilityReqID],
		TestCaseID:         v[FieldTestCaseID],
		Priority:           v[FieldPriority],
		Objective:          v[FieldObjective],
		Precondition:       v[FieldPrecondition],
		Steps:              v[FieldSteps],
		Inputs:             v[FieldInputs],
		DesignMethodology:  v[FieldDesignMethodology],
		DependentTestCases: v[FieldDependentTestCases],
		ExpectedOutcome:    v[FieldExpectedOutcome],
		ActualOutcome:      v[FieldActualOutcome],
		Result:             TestResult(v[FieldTestResult]),
		Remarks:            v[FieldRemarks],
		TrackBugID:         v[FieldTrackBugID],
	}
}

// Record is a test case together with the sheet row it was read from.
type Record struct {
	// Row is the 1-based sheet row.
	Row int `json:"row"`
	TestCase
}

// Labeled maps each column label to its value, in the shape callers
// of get_all_test_cases expect.
func (tc TestCase) Labeled() map[string]string {
	values := tc.Values()
	m := make(map[string]string, FieldCount)
	for i, v := range values {
		m[Field(i).Label()] = v
	}
	return m
}
