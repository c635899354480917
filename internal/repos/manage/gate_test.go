package manage_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tavrel/ghsweep/internal/repos/manage"
	"github.com/tavrel/ghsweep/internal/repos/shared"
)

type stubPrompter struct {
	response    bool
	promptError error
	prompts     []string
}

func (prompter *stubPrompter) Confirm(prompt string) (bool, error) {
	prompter.prompts = append(prompter.prompts, prompt)
	return prompter.response, prompter.promptError
}

func buildSamplePlan(testInstance *testing.T, operation shared.Operation) []manage.PlanEntry {
	testInstance.Helper()
	return []manage.PlanEntry{
		{Repository: mustOwnerRepository(testInstance, "octocat/active-service"), CurrentStatus: shared.RepositoryStatusActive, Operation: operation},
		{Repository: mustOwnerRepository(testInstance, "octocat/archived-service"), CurrentStatus: shared.RepositoryStatusArchived, Operation: operation},
		{Repository: mustOwnerRepository(testInstance, "octocat/missing-service"), CurrentStatus: shared.RepositoryStatusNotFound, Operation: operation},
	}
}

func TestConfirmationGateReview(testInstance *testing.T) {
	testCases := []struct {
		name          string
		operation     shared.Operation
		response      bool
		expectedError error
	}{
		{name: "confirmed_archive_proceeds", operation: shared.OperationArchive, response: true, expectedError: nil},
		{name: "declined_archive_cancels", operation: shared.OperationArchive, response: false, expectedError: manage.ErrUserCancelled},
		{name: "confirmed_delete_proceeds", operation: shared.OperationDelete, response: true, expectedError: nil},
		{name: "declined_delete_cancels", operation: shared.OperationDelete, response: false, expectedError: manage.ErrUserCancelled},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			outputBuffer := &bytes.Buffer{}
			prompter := &stubPrompter{response: testCase.response}
			gate := manage.NewConfirmationGate(prompter, outputBuffer)

			reviewError := gate.Review(buildSamplePlan(testInstance, testCase.operation), testCase.operation)
			if testCase.expectedError == nil {
				require.NoError(testInstance, reviewError)
			} else {
				require.ErrorIs(testInstance, reviewError, testCase.expectedError)
			}

			require.Len(testInstance, prompter.prompts, 1)
			require.Contains(testInstance, prompter.prompts[0], "Type 'yes'")

			renderedOutput := outputBuffer.String()
			require.Contains(testInstance, renderedOutput, "octocat/active-service")
			require.Contains(testInstance, renderedOutput, "octocat/archived-service")
			require.Contains(testInstance, renderedOutput, "octocat/missing-service")
		})
	}
}

func TestConfirmationGateCountsActionableEntries(testInstance *testing.T) {
	outputBuffer := &bytes.Buffer{}
	gate := manage.NewConfirmationGate(&stubPrompter{response: true}, outputBuffer)

	reviewError := gate.Review(buildSamplePlan(testInstance, shared.OperationArchive), shared.OperationArchive)
	require.NoError(testInstance, reviewError)

	require.Contains(testInstance, outputBuffer.String(), "about to archive 1 repositories")
}

func TestConfirmationGateWarnsAboutDeletion(testInstance *testing.T) {
	outputBuffer := &bytes.Buffer{}
	gate := manage.NewConfirmationGate(&stubPrompter{response: true}, outputBuffer)

	reviewError := gate.Review(buildSamplePlan(testInstance, shared.OperationDelete), shared.OperationDelete)
	require.NoError(testInstance, reviewError)

	require.Contains(testInstance, outputBuffer.String(), "DELETION IS IRREVERSIBLE")
}

func TestConfirmationGatePropagatesPromptErrors(testInstance *testing.T) {
	promptFailure := errors.New("terminal closed")
	gate := manage.NewConfirmationGate(&stubPrompter{promptError: promptFailure}, &bytes.Buffer{})

	reviewError := gate.Review(buildSamplePlan(testInstance, shared.OperationArchive), shared.OperationArchive)
	require.ErrorIs(testInstance, reviewError, promptFailure)
}

func TestLineConfirmationPrompter(testInstance *testing.T) {
	testCases := []struct {
		name             string
		input            string
		expectedDecision bool
	}{
		{name: "exact_yes_confirms", input: "yes\n", expectedDecision: true},
		{name: "uppercase_yes_confirms", input: "YES\n", expectedDecision: true},
		{name: "mixed_case_yes_confirms", input: "Yes\n", expectedDecision: true},
		{name: "padded_yes_confirms", input: "  yes  \n", expectedDecision: true},
		{name: "short_y_cancels", input: "y\n", expectedDecision: false},
		{name: "no_cancels", input: "no\n", expectedDecision: false},
		{name: "empty_line_cancels", input: "\n", expectedDecision: false},
		{name: "closed_input_cancels", input: "", expectedDecision: false},
		{name: "yes_with_suffix_cancels", input: "yes please\n", expectedDecision: false},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			outputBuffer := &bytes.Buffer{}
			prompter := manage.NewLineConfirmationPrompter(strings.NewReader(testCase.input), outputBuffer)

			decision, promptError := prompter.Confirm("Proceed? ")
			require.NoError(testInstance, promptError)
			require.Equal(testInstance, testCase.expectedDecision, decision)
			require.Equal(testInstance, "Proceed? ", outputBuffer.String())
		})
	}
}
