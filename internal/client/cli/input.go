package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// GetPassword prints prompt to w and reads a password from the terminal
// without echo. The caller should wipe the returned slice.
func GetPassword(w io.Writer, prompt string) ([]byte, error) {
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// splitApps turns "a,b c" style arguments into a list of app names.
func splitApps(args []string) []string {
	var apps []string
	for _, a := range args {
		for _, name := range strings.Split(a, ",") {
			if name = strings.TrimSpace(name); name != "" {
				apps = append(apps, name)
			}
		}
	}
	return apps
}
