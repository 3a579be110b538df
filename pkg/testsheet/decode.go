package testsheet

import (
	"fmt"

	"github.com/ukaji3/testsheet-go/pkg/testsheet/models"
)

// Defaults applied to batch entries that leave a field out.
const (
	DefaultPriority   = "Medium"
	DefaultDependents = "None"
)

// DecodeTestCase builds a test case from a batch entry keyed by field key.
// The entry must carry a non-empty test_case_id and every value must be a
// string. Unknown keys and null values are ignored.
func DecodeTestCase(entry map[string]any) (models.TestCase, error) {
	var values [models.FieldCount]string
	values[models.FieldPriority] = DefaultPriority
	values[models.FieldDependentTestCases] = DefaultDependents
	values[models.FieldTestResult] = string(models.ResultNotTested)

	for key, raw := range entry {
		f, ok := models.ParseField(key)
		if !ok || raw == nil {
			continue
		}
		v, ok := raw.(string)
		if !ok {
			return models.TestCase{}, fmt.Errorf("%w: %s must be a string, got %T", ErrInvalidTestCase, key, raw)
		}
		values[f] = v
	}
	if values[models.FieldTestCaseID] == "" {
		return models.TestCase{}, fmt.Errorf("%w: missing test_case_id", ErrInvalidTestCase)
	}
	return models.TestCaseFromValues(values), nil
}

func entryID(entry map[string]any) string {
	id, _ := entry[models.FieldTestCaseID.Key()].(string)
	return id
}
