package report

import (
	"fmt"

	"github.com/pterm/pterm"
)

var (
	successStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	successColorFG = pterm.FgLightGreen
	warnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	warnColorFG    = pterm.FgYellow
	errorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	errorColorFG   = pterm.FgRed
)

// displayDiagnostic displays a single diagnostic with its kind banner,
// location hint, and message.
func displayDiagnostic(d Diagnostic) {
	switch d.Severity {
	case Warning:
		warnStyleBG.Print(d.Kind.String())
		warnColorFG.Println(" " + d.Loc.String())
	default:
		errorStyleBG.Print(d.Kind.String())
		errorColorFG.Println(" " + d.Loc.String())
	}

	fmt.Println("  " + d.Message)
}

// displayFatal displays a fatal error message.
func displayFatal(msg string, args ...interface{}) {
	errorStyleBG.Print("Fatal Error")
	errorColorFG.Println(" " + fmt.Sprintf(msg, args...))
}

// displayInfo displays a tagged informational message.
func displayInfo(tag, msg string) {
	successStyleBG.Print(tag)
	successColorFG.Println(" " + msg)
}
