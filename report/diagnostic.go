package report

import (
	"fmt"

	"go.uber.org/multierr"
)

// Kind enumerates the different kinds of diagnostics the compiler can
// produce.  Each validator check and each pass failure mode maps to exactly
// one kind so that callers can dispatch on it without parsing messages.
type Kind int

const (
	// Validator diagnostics.
	NoEntryPoint             Kind = iota // No function carries `entry_point`.
	MultipleEntryPoints                  // More than one function carries `entry_point`.
	MissingAttribute                     // A required entry attribute is absent.
	MalformedAttribute                   // A required entry attribute has an unusable value.
	BadModuleFlag                        // A required module flag is missing or has the wrong value.
	BadIntrinsicSignature                // A recognized intrinsic is called with the wrong operands.
	QubitOutOfRange                      // A qubit identity lies outside [0, `required_num_qubits`).
	ResultOutOfRange                     // A result identity lies outside [0, `required_num_results`).
	BarrierArityExceedsQubits            // A barrier names more qubits than the entry declares.
	ProfileViolation                     // The module uses a construct its profile forbids.
	UnknownIntrinsic                     // An unrecognized name in a reserved quantum namespace.
	UnusedLabel                          // A label global constant no output call references.

	// Pass-level diagnostics.
	IoError           // Reading or writing a file failed.
	BitcodeParseError // The loader could not parse the input module.
	BitcodeWriteError // The emitter could not serialize the output module.
)

// kindStrings maps each diagnostic kind to its display name.
var kindStrings = map[Kind]string{
	NoEntryPoint:              "NoEntryPoint",
	MultipleEntryPoints:       "MultipleEntryPoints",
	MissingAttribute:          "MissingAttribute",
	MalformedAttribute:        "MalformedAttribute",
	BadModuleFlag:             "BadModuleFlag",
	BadIntrinsicSignature:     "BadIntrinsicSignature",
	QubitOutOfRange:           "QubitOutOfRange",
	ResultOutOfRange:          "ResultOutOfRange",
	BarrierArityExceedsQubits: "BarrierArityExceedsQubits",
	ProfileViolation:          "ProfileViolation",
	UnknownIntrinsic:          "UnknownIntrinsic",
	UnusedLabel:               "UnusedLabel",
	IoError:                   "IoError",
	BitcodeParseError:         "BitcodeParseError",
	BitcodeWriteError:         "BitcodeWriteError",
}

func (k Kind) String() string {
	if s, ok := kindStrings[k]; ok {
		return s
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// Severity indicates how a diagnostic affects compilation.  Warnings never
// abort compilation; a single error stops the pipeline after validation.
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}

	return "error"
}

// -----------------------------------------------------------------------------

// Location is a hint to where in the module a diagnostic arose.  The zero
// value means "whole module".  Block and call indices are only meaningful
// when Func is set; a negative index means "not available".
type Location struct {
	// The name of the enclosing function.
	Func string

	// The index of the basic block within the function.
	Block int

	// The index of the call instruction within the block.
	Call int
}

// ModuleLocation returns the location hint for a module-level diagnostic.
func ModuleLocation() Location {
	return Location{Block: -1, Call: -1}
}

// FuncLocation returns a location hint naming only a function.
func FuncLocation(fn string) Location {
	return Location{Func: fn, Block: -1, Call: -1}
}

// CallLocation returns a location hint down to a call site.
func CallLocation(fn string, block, call int) Location {
	return Location{Func: fn, Block: block, Call: call}
}

func (loc Location) String() string {
	switch {
	case loc.Func == "":
		return "<module>"
	case loc.Block < 0:
		return loc.Func
	case loc.Call < 0:
		return fmt.Sprintf("%s, block %d", loc.Func, loc.Block)
	default:
		return fmt.Sprintf("%s, block %d, call %d", loc.Func, loc.Block, loc.Call)
	}
}

// -----------------------------------------------------------------------------

// Diagnostic is a single finding produced by the loader, the validator, the
// decomposer, or the emitter.  Diagnostics are plain values: they are
// collected into lists and returned, never panicked or thrown.
type Diagnostic struct {
	// The kind of the diagnostic.
	Kind Kind

	// The severity of the diagnostic.
	Severity Severity

	// The human-readable message.
	Message string

	// The location hint.
	Loc Location
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s [%s] at %s: %s", d.Severity, d.Kind, d.Loc, d.Message)
}

// Errorf creates a new error diagnostic with a formatted message.
func Errorf(kind Kind, loc Location, msg string, args ...interface{}) Diagnostic {
	return Diagnostic{Kind: kind, Severity: Error, Message: fmt.Sprintf(msg, args...), Loc: loc}
}

// Warnf creates a new warning diagnostic with a formatted message.
func Warnf(kind Kind, loc Location, msg string, args ...interface{}) Diagnostic {
	return Diagnostic{Kind: kind, Severity: Warning, Message: fmt.Sprintf(msg, args...), Loc: loc}
}

// -----------------------------------------------------------------------------

// List is an append-only collection of diagnostics.  The validator collects
// every finding into one list in a single pass; later passes append at most
// one fatal diagnostic before returning.
type List []Diagnostic

// Add appends a diagnostic to the list.
func (l *List) Add(d Diagnostic) {
	*l = append(*l, d)
}

// Extend appends every diagnostic of another list.
func (l *List) Extend(other List) {
	*l = append(*l, other...)
}

// HasErrors returns whether the list contains any error-severity diagnostic.
func (l List) HasErrors() bool {
	for _, d := range l {
		if d.Severity == Error {
			return true
		}
	}

	return false
}

// Errors returns only the error-severity diagnostics of the list.
func (l List) Errors() List {
	var errs List
	for _, d := range l {
		if d.Severity == Error {
			errs = append(errs, d)
		}
	}

	return errs
}

// Err collapses the error-severity diagnostics of the list into a single Go
// error.  It returns nil when the list holds no errors, so the result can be
// returned directly from library entry points.
func (l List) Err() error {
	var err error
	for _, d := range l {
		if d.Severity == Error {
			err = multierr.Append(err, d)
		}
	}

	return err
}
