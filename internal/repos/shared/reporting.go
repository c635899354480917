package shared

import (
	"fmt"
	"io"
	"os"

	"github.com/cli/go-gh/v2/pkg/tableprinter"
	"github.com/cli/go-gh/v2/pkg/term"
)

const defaultTableWidthConstant = 80

// Reporter emits formatted progress events to an underlying sink.
type Reporter interface {
	Printf(format string, arguments ...any)
}

type writerReporter struct {
	writer io.Writer
}

// NewWriterReporter constructs a Reporter that writes to the provided io.Writer.
func NewWriterReporter(writer io.Writer) Reporter {
	if writer == nil || writer == io.Discard {
		writer = os.Stdout
	}
	return writerReporter{writer: writer}
}

func (reporter writerReporter) Printf(format string, arguments ...any) {
	if reporter.writer == nil {
		return
	}
	fmt.Fprintf(reporter.writer, format, arguments...)
}

// NewTablePrinter builds a table printer sized to the terminal when the writer
// ultimately targets an interactive stdout, and a tab-separated printer
// otherwise so piped and captured output stays machine-readable. Wrapping
// writers are seen through via Unwrap before the destination check.
func NewTablePrinter(writer io.Writer) tableprinter.TablePrinter {
	if unwrapWriter(writer) == os.Stdout {
		terminal := term.FromEnv()
		if terminal.IsTerminalOutput() {
			width, _, sizeError := terminal.Size()
			if sizeError != nil || width <= 0 {
				width = defaultTableWidthConstant
			}
			return tableprinter.New(writer, true, width)
		}
	}
	return tableprinter.New(writer, false, 0)
}

func unwrapWriter(writer io.Writer) io.Writer {
	for {
		wrapper, isWrapper := writer.(interface{ Unwrap() io.Writer })
		if !isWrapper {
			return writer
		}
		unwrapped := wrapper.Unwrap()
		if unwrapped == nil || unwrapped == writer {
			return writer
		}
		writer = unwrapped
	}
}
