package opus

import (
	"errors"
	"fmt"

	"github.com/michaelplews/opus/block"
	"github.com/michaelplews/opus/errs"
	"github.com/michaelplews/opus/format"
)

// Severity grades a Diagnostic.
type Severity uint8

const (
	// SeverityWarning marks data that was skipped or kept in a degraded form
	// while the rest of the block survived.
	SeverityWarning Severity = iota + 1
	// SeverityError marks a block whose contents could not be decoded, or a
	// spectrum that could not be assembled.
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("Severity(%d)", uint8(s))
	}
}

// DiagnosticKind classifies the problem behind a Diagnostic.
type DiagnosticKind uint8

const (
	KindUnrecognizedBlockType DiagnosticKind = iota + 1
	KindUnrecognizedChannel
	KindCorruptDataBlock
	KindCorruptParameterBlock
	KindUnknownParameterType
	KindInvalidParameterValue
	KindIncompleteAbsorption
	KindOther
)

var diagnosticKinds = []struct {
	kind     DiagnosticKind
	err      error
	severity Severity
	name     string
}{
	{KindUnrecognizedBlockType, errs.ErrUnrecognizedBlockType, SeverityWarning, "UnrecognizedBlockType"},
	{KindUnrecognizedChannel, errs.ErrUnrecognizedChannel, SeverityWarning, "UnrecognizedChannel"},
	{KindCorruptDataBlock, errs.ErrCorruptDataBlock, SeverityError, "CorruptDataBlock"},
	{KindCorruptParameterBlock, errs.ErrCorruptParameterBlock, SeverityError, "CorruptParameterBlock"},
	{KindUnknownParameterType, errs.ErrUnknownParameterType, SeverityWarning, "UnknownParameterType"},
	{KindInvalidParameterValue, errs.ErrInvalidParameterValue, SeverityWarning, "InvalidParameterValue"},
	{KindIncompleteAbsorption, errs.ErrIncompleteAbsorption, SeverityError, "IncompleteAbsorption"},
}

func (k DiagnosticKind) String() string {
	for _, d := range diagnosticKinds {
		if d.kind == k {
			return d.name
		}
	}
	if k == KindOther {
		return "Other"
	}

	return fmt.Sprintf("DiagnosticKind(%d)", uint8(k))
}

// Diagnostic records a non-fatal problem met while reading a file.
type Diagnostic struct {
	Severity Severity
	Kind     DiagnosticKind
	// Index is the directory slot of the block, or -1 for file level problems.
	Index int
	Type  format.BlockType
	// Name is the block name, empty when the block type is unrecognized.
	Name string
	Err  error
}

func (d Diagnostic) Error() string {
	if d.Index < 0 {
		return fmt.Sprintf("%s: %s", d.Severity, d.Err)
	}
	if d.Name == "" {
		return fmt.Sprintf("%s: block %d (type %d): %s", d.Severity, d.Index, uint8(d.Type), d.Err)
	}

	return fmt.Sprintf("%s: block %d %q: %s", d.Severity, d.Index, d.Name, d.Err)
}

func (d Diagnostic) String() string {
	return d.Error()
}

// Unwrap returns the underlying error, so errors.Is matches the errs sentinels.
func (d Diagnostic) Unwrap() error {
	return d.Err
}

// classify maps err to its kind and severity. Unknown errors are graded as errors.
func classify(err error) (DiagnosticKind, Severity) {
	for _, d := range diagnosticKinds {
		if errors.Is(err, d.err) {
			return d.kind, d.severity
		}
	}

	return KindOther, SeverityError
}

// problemsOf splits the error of block.Decoder.Decode into one error per
// problem. Any other error is a single problem.
func problemsOf(err error) []error {
	if err == nil {
		return nil
	}

	var problems block.Problems
	if errors.As(err, &problems) {
		return problems
	}

	return []error{err}
}
