package server

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/ukaji3/testsheet-go/pkg/testsheet"
	"github.com/ukaji3/testsheet-go/pkg/testsheet/layout"
	"github.com/ukaji3/testsheet-go/pkg/testsheet/models"
	"github.com/ukaji3/testsheet-go/pkg/testsheet/output"
)

// Tools holds the handlers for every test sheet tool. Handlers never return
// a Go error; failures become text results starting with "Error: ".
type Tools struct {
	svc *testsheet.Service
}

// NewTools creates the tool handlers for svc.
func NewTools(svc *testsheet.Service) *Tools {
	return &Tools{svc: svc}
}

func workbookID() mcp.ToolOption {
	return mcp.WithString("wb_id", mcp.Required(), mcp.Description("Workbook id"))
}

func sheetName() mcp.ToolOption {
	return mcp.WithString("sheet_name",
		mcp.Description("Target sheet"),
		mcp.DefaultString(layout.ValidationSheet),
	)
}

// Definitions returns every tool with its handler.
func (t *Tools) Definitions() []Definition {
	testCaseParams := []mcp.ToolOption{
		mcp.WithDescription("Add a single test case to the SW Validation Testing sheet, SW Integration Testing sheet or SW Unit Testing sheet."),
		workbookID(),
	}
	for _, f := range testCaseFields {
		opts := []mcp.PropertyOption{mcp.Description(f.field.Label())}
		if f.required {
			opts = append(opts, mcp.Required())
		} else {
			opts = append(opts, mcp.DefaultString(f.def))
		}
		if f.field == models.FieldTestResult {
			opts = append(opts, mcp.Enum(resultValues()...))
		}
		testCaseParams = append(testCaseParams, mcp.WithString(f.field.Key(), opts...))
	}
	testCaseParams = append(testCaseParams, sheetName())

	detailParams := []mcp.ToolOption{
		mcp.WithDescription("Update the testing details section (project info, dates, etc.) of a sheet."),
		workbookID(),
	}
	for _, key := range detailKeys {
		detailParams = append(detailParams, mcp.WithString(key, mcp.DefaultString("")))
	}
	detailParams = append(detailParams, sheetName())

	return []Definition{
		{
			Tool: mcp.NewTool("create_workbook",
				mcp.WithDescription("Create a new Excel workbook from a template. If the template is not given or not found, the SW Validation Testing sheet is created from scratch."),
				mcp.WithString("wb_id", mcp.Description("Workbook id; generated when empty")),
				mcp.WithString("template_path", mcp.Description("Path of an .xlsx template")),
			),
			Handler: t.createWorkbook,
		},
		{
			Tool: mcp.NewTool("open_workbook",
				mcp.WithDescription("Open an existing Excel workbook from a file path."),
				workbookID(),
				mcp.WithString("filepath", mcp.Required(), mcp.Description("Path of the .xlsx file")),
			),
			Handler: t.openWorkbook,
		},
		{
			Tool:    mcp.NewTool("add_test_case", testCaseParams...),
			Handler: t.addTestCase,
		},
		{
			Tool: mcp.NewTool("add_multiple_test_cases",
				mcp.WithDescription("Add multiple test cases at once. Each test case is an object keyed by field name and must have a test_case_id."),
				workbookID(),
				mcp.WithArray("test_cases", mcp.Required(),
					mcp.Description("Test cases to add"),
					mcp.Items(map[string]any{"type": "object"}),
				),
				sheetName(),
			),
			Handler: t.addMultipleTestCases,
		},
		{
			Tool: mcp.NewTool("update_test_case",
				mcp.WithDescription("Update fields of a test case found by its Test Case ID. Unknown field names are ignored."),
				workbookID(),
				mcp.WithString("test_case_id", mcp.Required(), mcp.Description("Test Case ID to update")),
				mcp.WithObject("field_updates", mcp.Required(), mcp.Description("Field name to new value")),
				sheetName(),
			),
			Handler: t.updateTestCase,
		},
		{
			Tool: mcp.NewTool("get_all_test_cases",
				mcp.WithDescription("Get all test cases from a sheet."),
				workbookID(),
				sheetName(),
			),
			Handler: t.getAllTestCases,
		},
		{
			Tool: mcp.NewTool("get_test_case_summary",
				mcp.WithDescription("Get test case statistics and summary."),
				workbookID(),
				sheetName(),
			),
			Handler: t.getTestCaseSummary,
		},
		{
			Tool:    mcp.NewTool("update_testing_details", detailParams...),
			Handler: t.updateTestingDetails,
		},
		{
			Tool: mcp.NewTool("get_testing_details",
				mcp.WithDescription("Extract the testing details block from a sheet."),
				workbookID(),
				sheetName(),
			),
			Handler: t.getTestingDetails,
		},
		{
			Tool: mcp.NewTool("save_workbook",
				mcp.WithDescription("Save the workbook to a .xlsx file."),
				workbookID(),
				mcp.WithString("filepath", mcp.Required(), mcp.Description("Destination path")),
			),
			Handler: t.saveWorkbook,
		},
		{
			Tool: mcp.NewTool("get_workbook_info",
				mcp.WithDescription("Get workbook basic information."),
				workbookID(),
			),
			Handler: t.getWorkbookInfo,
		},
		{
			Tool: mcp.NewTool("delete_workbook",
				mcp.WithDescription("Delete a workbook from memory without saving it."),
				workbookID(),
			),
			Handler: t.deleteWorkbook,
		},
		{
			Tool:    mcp.NewTool("list_workbooks", mcp.WithDescription("List the ids of workbooks open in memory.")),
			Handler: t.listWorkbooks,
		},
	}
}

// testCaseFields are the add_test_case parameters in column order.
var testCaseFields = []struct {
	field    models.Field
	required bool
	def      string
}{
	{models.FieldTraceabilityReqID, true, ""},
	{models.FieldTestCaseID, true, ""},
	{models.FieldPriority, true, ""},
	{models.FieldObjective, true, ""},
	{models.FieldPrecondition, true, ""},
	{models.FieldSteps, true, ""},
	{models.FieldInputs, true, ""},
	{models.FieldDesignMethodology, true, ""},
	{models.FieldDependentTestCases, false, testsheet.DefaultDependents},
	{models.FieldExpectedOutcome, false, ""},
	{models.FieldActualOutcome, false, ""},
	{models.FieldTestResult, false, string(models.ResultNotTested)},
	{models.FieldRemarks, false, ""},
	{models.FieldTrackBugID, false, ""},
}

var detailKeys = []string{
	"project_name", "features_to_test", "references", "common_attributes", "notation", "version_under_test",
	"test_environment", "test_case_designer", "test_case_reviewer", "tester", "test_start_date", "test_end_date",
}

func resultValues() []string {
	values := make([]string, len(models.TestResults))
	for i, r := range models.TestResults {
		values[i] = string(r)
	}
	return values
}

func errorResult(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError("Error: " + err.Error())
}

func (t *Tools) createWorkbook(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, err := t.svc.CreateWorkbook(req.GetString("wb_id", ""), req.GetString("template_path", ""))
	if err != nil {
		return errorResult(err), nil
	}
	switch {
	case res.FromTemplate:
		return mcp.NewToolResultText(fmt.Sprintf("Workbook '%s' created from template '%s'.", res.ID, res.Template)), nil
	case res.TemplateMissing():
		return mcp.NewToolResultText(fmt.Sprintf("Workbook '%s' created with SW Validation sheet (template '%s' not found).", res.ID, res.Template)), nil
	default:
		return mcp.NewToolResultText(fmt.Sprintf("Workbook '%s' created with SW Validation Testing sheet.", res.ID)), nil
	}
}

func (t *Tools) openWorkbook(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("wb_id")
	if err != nil {
		return errorResult(err), nil
	}
	path, err := req.RequireString("filepath")
	if err != nil {
		return errorResult(err), nil
	}
	if err := t.svc.OpenWorkbook(id, path); err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Workbook '%s' opened from '%s'.", id, path)), nil
}

func (t *Tools) addTestCase(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("wb_id")
	if err != nil {
		return errorResult(err), nil
	}
	var values [models.FieldCount]string
	for _, f := range testCaseFields {
		if f.required {
			if values[f.field], err = req.RequireString(f.field.Key()); err != nil {
				return errorResult(err), nil
			}
			continue
		}
		values[f.field] = req.GetString(f.field.Key(), f.def)
	}
	sheet := req.GetString("sheet_name", layout.ValidationSheet)

	tc := models.TestCaseFromValues(values)
	row, err := t.svc.AddTestCase(id, sheet, tc)
	if err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Test case '%s' added to row %d in sheet '%s'.", tc.TestCaseID, row, sheet)), nil
}

func (t *Tools) addMultipleTestCases(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("wb_id")
	if err != nil {
		return errorResult(err), nil
	}
	raw, ok := req.GetArguments()["test_cases"].([]any)
	if !ok {
		return errorResult(fmt.Errorf("test_cases must be an array of objects")), nil
	}
	entries := make([]map[string]any, len(raw))
	for i, item := range raw {
		// Non-object entries stay nil and are reported as failures.
		entries[i], _ = item.(map[string]any)
	}
	sheet := req.GetString("sheet_name", layout.ValidationSheet)

	res, err := t.svc.AddTestCases(id, sheet, entries)
	if err != nil {
		return errorResult(err), nil
	}
	text := fmt.Sprintf("Successfully added %d test cases to sheet '%s'.", res.Added, sheet)
	for _, f := range res.Failures {
		text += fmt.Sprintf("\nSkipped entry %d (%s): %s", f.Index, f.TestCaseID, f.Error)
	}
	return mcp.NewToolResultText(text), nil
}

func (t *Tools) updateTestCase(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("wb_id")
	if err != nil {
		return errorResult(err), nil
	}
	testCaseID, err := req.RequireString("test_case_id")
	if err != nil {
		return errorResult(err), nil
	}
	raw, ok := req.GetArguments()["field_updates"].(map[string]any)
	if !ok {
		return errorResult(fmt.Errorf("field_updates must be an object")), nil
	}

	updates, err := fieldUpdates(raw)
	if err != nil {
		return errorResult(err), nil
	}
	changed, err := t.svc.UpdateTestCase(id, req.GetString("sheet_name", layout.ValidationSheet), testCaseID, updates)
	if err != nil {
		return errorResult(err), nil
	}
	keys := make([]string, len(changed))
	for i, f := range changed {
		keys[i] = f.Key()
	}
	return mcp.NewToolResultText(fmt.Sprintf("Updated test case '%s' fields: %s.", testCaseID, strings.Join(keys, ", "))), nil
}

// fieldUpdates keeps the recognized keys of raw, in column order. A null
// value clears the cell; numbers and booleans are written as text. Arrays
// and objects are rejected.
func fieldUpdates(raw map[string]any) ([]models.FieldUpdate, error) {
	var updates []models.FieldUpdate
	for key, v := range raw {
		f, ok := models.ParseField(key)
		if !ok {
			continue
		}
		value, err := cellText(key, v)
		if err != nil {
			return nil, err
		}
		updates = append(updates, models.FieldUpdate{Field: f, Value: value})
	}
	sort.Slice(updates, func(i, j int) bool { return updates[i].Field < updates[j].Field })
	return updates, nil
}

func cellText(key string, v any) (string, error) {
	switch v := v.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	default:
		return "", fmt.Errorf("%s must be a string, number or boolean, got %T", key, v)
	}
}

func (t *Tools) getAllTestCases(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("wb_id")
	if err != nil {
		return errorResult(err), nil
	}
	sheet := req.GetString("sheet_name", layout.ValidationSheet)
	records, err := t.svc.ListTestCases(id, sheet)
	if err != nil {
		return errorResult(err), nil
	}
	text, err := output.RecordsText(sheet, records)
	if err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText(text), nil
}

func (t *Tools) getTestCaseSummary(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("wb_id")
	if err != nil {
		return errorResult(err), nil
	}
	summary, err := t.svc.Summarize(id, req.GetString("sheet_name", layout.ValidationSheet))
	if err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText(output.SummaryText(summary)), nil
}

func (t *Tools) updateTestingDetails(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("wb_id")
	if err != nil {
		return errorResult(err), nil
	}
	var project, test [6]string
	for i, key := range detailKeys {
		if i < len(project) {
			project[i] = req.GetString(key, "")
		} else {
			test[i-len(project)] = req.GetString(key, "")
		}
	}
	sheet := req.GetString("sheet_name", layout.ValidationSheet)
	if err := t.svc.UpdateDetails(id, sheet, models.DetailsFromBlocks(project, test)); err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Testing details updated on sheet '%s'.", sheet)), nil
}

func (t *Tools) getTestingDetails(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("wb_id")
	if err != nil {
		return errorResult(err), nil
	}
	d, err := t.svc.GetDetails(id, req.GetString("sheet_name", layout.ValidationSheet))
	if err != nil {
		return errorResult(err), nil
	}
	data, err := output.ToJSON(d, true)
	if err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (t *Tools) saveWorkbook(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("wb_id")
	if err != nil {
		return errorResult(err), nil
	}
	path, err := req.RequireString("filepath")
	if err != nil {
		return errorResult(err), nil
	}
	if err := t.svc.SaveWorkbook(id, path); err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Workbook '%s' saved to %s.", id, path)), nil
}

func (t *Tools) getWorkbookInfo(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("wb_id")
	if err != nil {
		return errorResult(err), nil
	}
	info, err := t.svc.WorkbookInfo(id)
	if err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText(output.InfoText(info, t.svc.Table().SheetName)), nil
}

func (t *Tools) deleteWorkbook(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("wb_id")
	if err != nil {
		return errorResult(err), nil
	}
	if err := t.svc.DeleteWorkbook(id); err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Workbook '%s' deleted from memory.", id)), nil
}

func (t *Tools) listWorkbooks(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ids := t.svc.ListWorkbooks()
	if len(ids) == 0 {
		return mcp.NewToolResultText("No workbooks in memory."), nil
	}
	return mcp.NewToolResultText("Workbooks: " + strings.Join(ids, ", ")), nil
}
