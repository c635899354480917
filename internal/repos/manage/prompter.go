package manage

import (
	"bufio"
	"io"
	"strings"
)

const affirmativeResponseConstant = "yes"

// LineConfirmationPrompter reads a single confirmation line from an io.Reader.
// Only an exact case-insensitive "yes" confirms; anything else, including an
// empty line or EOF, cancels.
type LineConfirmationPrompter struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewLineConfirmationPrompter constructs a prompter from the provided reader and writer.
func NewLineConfirmationPrompter(input io.Reader, output io.Writer) *LineConfirmationPrompter {
	return &LineConfirmationPrompter{reader: bufio.NewReader(input), writer: output}
}

// Confirm writes the prompt and interprets the operator's response.
func (prompter *LineConfirmationPrompter) Confirm(prompt string) (bool, error) {
	if prompter.writer != nil {
		if _, writeError := io.WriteString(prompter.writer, prompt); writeError != nil {
			return false, writeError
		}
	}

	response, readError := prompter.reader.ReadString('\n')
	if readError != nil && readError != io.EOF {
		return false, readError
	}

	return strings.EqualFold(strings.TrimSpace(response), affirmativeResponseConstant), nil
}
