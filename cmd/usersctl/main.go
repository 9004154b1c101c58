// Command usersctl runs requests through the users handler from a shell.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:          "usersctl",
		Short:        "Invoke the users API handler locally",
		SilenceUsage: true,
	}

	root.AddCommand(newInvokeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
