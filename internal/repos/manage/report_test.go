package manage_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tavrel/ghsweep/internal/repos/manage"
	"github.com/tavrel/ghsweep/internal/repos/shared"
)

func TestExecutionReportTallies(testInstance *testing.T) {
	report := manage.ExecutionReport{Outcomes: []manage.OperationOutcome{
		{Repository: mustOwnerRepository(testInstance, "octocat/one"), Operation: shared.OperationArchive, Result: manage.OutcomeSuccess, Details: "archived"},
		{Repository: mustOwnerRepository(testInstance, "octocat/two"), Operation: shared.OperationArchive, Result: manage.OutcomeAlreadyInTargetState, Details: "already archived"},
		{Repository: mustOwnerRepository(testInstance, "octocat/three"), Operation: shared.OperationArchive, Result: manage.OutcomeFailure, Details: "repository not found or no access"},
	}}

	require.Equal(testInstance, 2, report.Succeeded())
	require.Equal(testInstance, 1, report.Failed())
	require.Equal(testInstance, "Results: 2 successful, 1 failed", report.Summary())
	require.ErrorIs(testInstance, report.ExitError(), manage.ErrOperationsFailed)
}

func TestExecutionReportExitErrorNilWithoutFailures(testInstance *testing.T) {
	report := manage.ExecutionReport{Outcomes: []manage.OperationOutcome{
		{Repository: mustOwnerRepository(testInstance, "octocat/one"), Operation: shared.OperationDelete, Result: manage.OutcomeSuccess, Details: "deleted"},
	}}

	require.Equal(testInstance, 1, report.Succeeded())
	require.Zero(testInstance, report.Failed())
	require.NoError(testInstance, report.ExitError())
}

func TestExecutionReportEmpty(testInstance *testing.T) {
	report := manage.ExecutionReport{}

	require.Zero(testInstance, report.Succeeded())
	require.Zero(testInstance, report.Failed())
	require.Equal(testInstance, "Results: 0 successful, 0 failed", report.Summary())
	require.NoError(testInstance, report.ExitError())
}

func TestExecutionReportRenderTable(testInstance *testing.T) {
	report := manage.ExecutionReport{Outcomes: []manage.OperationOutcome{
		{Repository: mustOwnerRepository(testInstance, "octocat/one"), Operation: shared.OperationArchive, Result: manage.OutcomeSuccess, Details: "archived"},
		{Repository: mustOwnerRepository(testInstance, "octocat/three"), Operation: shared.OperationArchive, Result: manage.OutcomeFailure, Details: "repository not found or no access"},
	}}

	outputBuffer := &bytes.Buffer{}
	require.NoError(testInstance, report.RenderTable(outputBuffer))

	renderedOutput := outputBuffer.String()
	require.Contains(testInstance, renderedOutput, "octocat/one")
	require.Contains(testInstance, renderedOutput, "SUCCESS")
	require.Contains(testInstance, renderedOutput, "octocat/three")
	require.Contains(testInstance, renderedOutput, "FAILED")
	require.Contains(testInstance, renderedOutput, "Results: 1 successful, 1 failed")
}
