package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/felixgeelhaar/pyprep/internal/domain/pythons"
)

// newConfirmer asks on out and reads the answer from in. An empty answer
// accepts, matching the [Y/n] hint.
func newConfirmer(in io.Reader, out io.Writer) pythons.Confirmer {
	reader := bufio.NewReader(in)
	return func(prompt string) (bool, error) {
		_, _ = fmt.Fprintf(out, "%s [Y/n]: ", prompt)
		response, err := reader.ReadString('\n')
		if err != nil && (err != io.EOF || response == "") {
			return false, err
		}
		response = strings.ToLower(strings.TrimSpace(response))
		return response == "" || response == "y" || response == "yes", nil
	}
}
