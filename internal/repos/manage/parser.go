package manage

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/tavrel/ghsweep/internal/repos/shared"
)

const (
	commentLinePrefixConstant                = "#"
	malformedIdentifierErrorTemplateConstant = "line %d: malformed repository identifier %q: %v"
	repositoryListScanErrorTemplateConstant  = "failed to read repository list: %w"
)

// MalformedIdentifierError reports an input line that is not a valid
// owner/repo identifier. Any malformed line aborts the whole parse.
type MalformedIdentifierError struct {
	LineNumber int
	Line       string
	Cause      error
}

// Error identifies the offending line.
func (identifierError MalformedIdentifierError) Error() string {
	return fmt.Sprintf(malformedIdentifierErrorTemplateConstant, identifierError.LineNumber, identifierError.Line, identifierError.Cause)
}

// Unwrap exposes the validation failure.
func (identifierError MalformedIdentifierError) Unwrap() error {
	return identifierError.Cause
}

// ParseRepositoryList consumes the input in a single forward pass, producing
// validated identifiers in input order. Blank lines and lines starting with #
// are skipped; duplicates are preserved so repeated entries surface as
// independent outcomes in the final report.
func ParseRepositoryList(reader io.Reader) ([]shared.OwnerRepository, error) {
	identifiers := []shared.OwnerRepository{}

	scanner := bufio.NewScanner(reader)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++

		trimmedLine := strings.TrimSpace(scanner.Text())
		if len(trimmedLine) == 0 || strings.HasPrefix(trimmedLine, commentLinePrefixConstant) {
			continue
		}

		repository, parseError := shared.NewOwnerRepository(trimmedLine)
		if parseError != nil {
			return nil, MalformedIdentifierError{LineNumber: lineNumber, Line: trimmedLine, Cause: parseError}
		}

		identifiers = append(identifiers, repository)
	}

	if scanError := scanner.Err(); scanError != nil {
		return nil, fmt.Errorf(repositoryListScanErrorTemplateConstant, scanError)
	}

	return identifiers, nil
}
