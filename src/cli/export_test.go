package cli

import (
	"io"

	"github.com/spf13/cobra"
)

// ExecuteForTest runs root the way Execute does and returns the exit code.
func ExecuteForTest(root *cobra.Command, stderr io.Writer) int {
	return run(root, stderr)
}
