package helptext

import (
	"os"
	"strconv"
	"strings"
)

const (
	osc8Start = "\x1b]8;;"
	osc8End   = "\x1b]8;;\x1b\\"
)

// Terminal programs, by $TERM_PROGRAM, known to render OSC 8 hyperlinks.
var osc8TermPrograms = map[string]bool{
	"iTerm.app": true,
	"WezTerm":   true,
	"vscode":    true,
	"ghostty":   true,
}

// DetectOSC8Support reports whether the terminal described by the
// environment likely renders OSC 8 hyperlinks. OSC8=0 or OSC8=1 forces
// the answer.
func DetectOSC8Support() bool {
	return detectOSC8(os.Getenv)
}

func detectOSC8(getenv func(string) string) bool {
	switch getenv("OSC8") {
	case "0":
		return false
	case "1":
		return true
	}
	if getenv("DOMTERM") != "" || getenv("WT_SESSION") != "" {
		return true
	}
	if osc8TermPrograms[getenv("TERM_PROGRAM")] {
		return true
	}
	if strings.Contains(strings.ToLower(getenv("TERM")), "kitty") {
		return true
	}
	// VTE renders hyperlinks from 0.50, reported as 5000.
	n, err := strconv.Atoi(getenv("VTE_VERSION"))
	return err == nil && n >= 5000
}
