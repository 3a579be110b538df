package models

// Details is the "Testing Details" block above the test table.
type Details struct {
	ProjectName      string `json:"project_name" yaml:"project_name"`
	FeaturesToTest   string `json:"features_to_test" yaml:"features_to_test"`
	References       string `json:"references" yaml:"references"`
	CommonAttributes string `json:"common_attributes" yaml:"common_attributes"`
	Notation         string `json:"notation" yaml:"notation"`
	VersionUnderTest string `json:"version_under_test" yaml:"version_under_test"`
	TestEnvironment  string `json:"test_environment" yaml:"test_environment"`
	TestCaseDesigner string `json:"test_case_designer" yaml:"test_case_designer"`
	TestCaseReviewer string `json:"test_case_reviewer" yaml:"test_case_reviewer"`
	Tester           string `json:"tester" yaml:"tester"`
	TestStartDate    string `json:"test_start_date" yaml:"test_start_date"`
	TestEndDate      string `json:"test_end_date" yaml:"test_end_date"`
}

// ProjectBlock returns the left-hand values, top to bottom.
func (d Details) ProjectBlock() [6]string {
	return [6]string{d.ProjectName, d.FeaturesToTest, d.References, d.CommonAttributes, d.Notation, d.VersionUnderTest}
}

// TestBlock returns the right-hand values, top to bottom.
func (d Details) TestBlock() [6]string {
	return [6]string{d.TestEnvironment, d.TestCaseDesigner, d.TestCaseReviewer, d.Tester, d.TestStartDate, d.TestEndDate}
}

// DetailsFromBlocks is the inverse of ProjectBlock and TestBlock.
func DetailsFromBlocks(project, test [6]string) Details {
	return Details{
		ProjectName:      project[0],
		FeaturesToTest:   project[1],
		References:       project[2],
		CommonAttributes: project[3],
		Notation:         project[4],
		VersionUnderTest: project[5],
		TestEnvironment:  test[0],
		TestCaseDesigner: test[1],
		TestCaseReviewer: test[2],
		Tester:           test[3],
		TestStartDate:    test[4],
		TestEndDate:      test[5],
	}
}
