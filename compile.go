// compile.go: the compiler collaborator and its three-way outcome
//
// One compile attempt over the buffered text yields exactly one of:
//
//	OutcomeIncomplete — a valid prefix; the console should keep reading.
//	OutcomeMalformed  — can never become valid by appending; Detail
//	                    carries the diagnostic.
//	OutcomeComplete   — Unit carries the executable forms.
//
// The split is an explicit tagged result rather than error-type dispatch
// so the console's branch is exhaustive and testable in isolation.
//
// ReadCompiler is the standard implementation, wrapping the interactive
// reader. Compile must stay deterministic for identical (src, label) and
// safe to re-invoke as the buffer grows; the reader satisfies both since
// it holds no state between calls.
package lys

// OutcomeKind tags the result of one compile attempt.
type OutcomeKind int

const (
	OutcomeIncomplete OutcomeKind = iota
	OutcomeMalformed
	OutcomeComplete
)

// Unit is a successfully compiled, executable unit: the forms of one
// turn plus their canonical text (echoed on the diagnostic channel).
type Unit struct {
	Forms []Value
	Text  string
}

// Outcome is the tagged result of one compile attempt. Detail is set for
// OutcomeMalformed, Unit for OutcomeComplete.
type Outcome struct {
	Kind   OutcomeKind
	Detail error
	Unit   *Unit
}

// Compiler turns buffered source text into an Outcome.
type Compiler interface {
	Compile(src, label string) Outcome
}

// ReadCompiler compiles by reading src into forms in interactive mode.
type ReadCompiler struct{}

func (ReadCompiler) Compile(src, label string) Outcome {
	forms, err := ReadFormsInteractive(src)
	if err != nil {
		if IsIncomplete(err) {
			return Outcome{Kind: OutcomeIncomplete}
		}
		return Outcome{Kind: OutcomeMalformed, Detail: WrapErrorWithName(err, label, src)}
	}
	return Outcome{
		Kind: OutcomeComplete,
		Unit: &Unit{Forms: forms, Text: FormatForms(forms)},
	}
}
