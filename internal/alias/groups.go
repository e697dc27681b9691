// Copyright 2026 The Qapulse Authors
// SPDX-License-Identifier: MIT

package alias

// Field names used as Group.Field and as keys in the config aliases map.
const (
	FieldBuild              = "build"
	FieldPlatform           = "platform"
	FieldDate               = "date"
	FieldBuildType          = "build_type"
	FieldStatus             = "status"
	FieldAutomationExecuted = "automation_executed"
	FieldManualExecuted     = "manual_executed"
	FieldSeverity           = "severity"
	FieldTotalCases         = "total_cases"
	FieldExecuted           = "executed"
	FieldPassed             = "passed"
	FieldFailed             = "failed"
	FieldNotConsidered      = "not_considered"
	FieldCriticalIssues     = "critical_issues"
	FieldMajorIssues        = "major_issues"
	FieldMinorIssues        = "minor_issues"
)

// Built-in alias groups.
var (
	Build              = Group{FieldBuild, []string{"RC Build", "Build", "Build Version", "Version", "Build No"}}
	Platform           = Group{FieldPlatform, []string{"Platform", "OS", "Device Platform"}}
	Date               = Group{FieldDate, []string{"Date", "Test Date", "Execution Date", "Release Date"}}
	BuildType          = Group{FieldBuildType, []string{"Build Type", "Type", "Release Type"}}
	Status             = Group{FieldStatus, []string{"Status", "Result", "Overall Status"}}
	AutomationExecuted = Group{FieldAutomationExecuted, []string{"Automation Executed", "Automation Executed Count", "Automated", "Automation"}}
	ManualExecuted     = Group{FieldManualExecuted, []string{"Manual Executed", "Manual Executed Count", "Manual"}}
	Severity           = Group{FieldSeverity, []string{"Severity", "Priority"}}
	TotalCases         = Group{FieldTotalCases, []string{"Total Test Cases", "Total Cases", "Total"}}
	Executed           = Group{FieldExecuted, []string{"Executed", "Executed Cases", "Total Executed"}}
	Passed             = Group{FieldPassed, []string{"Passed", "Pass"}}
	Failed             = Group{FieldFailed, []string{"Failed", "Fail"}}
	NotConsidered      = Group{FieldNotConsidered, []string{"Not considered", "Not Considered", "NC", "N/A"}}
	CriticalIssues     = Group{FieldCriticalIssues, []string{"Critical Issues", "Critical", "Blocker Issues"}}
	MajorIssues        = Group{FieldMajorIssues, []string{"Major Issues", "Major"}}
	MinorIssues        = Group{FieldMinorIssues, []string{"Minor Issues", "Minor"}}
)

// All returns every built-in group in a stable order.
func All() []Group {
	return []Group{
		Build, Platform, Date, BuildType, Status,
		AutomationExecuted, ManualExecuted, Severity,
		TotalCases, Executed, Passed, Failed, NotConsidered,
		CriticalIssues, MajorIssues, MinorIssues,
	}
}

// Lookup returns the built-in group for a field name.
func Lookup(field string) (Group, bool) {
	for _, g := range All() {
		if g.Field == field {
			return g, true
		}
	}
	return Group{}, false
}
