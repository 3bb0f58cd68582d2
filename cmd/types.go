package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gstewart/loggram/internal/logtype"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the supported log types",
	Long: `List every registered log-type selector together with the filename
patterns used to locate its files inside an input directory.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range logtype.Names() {
			p, err := logtype.Lookup(name, nil)
			if err != nil {
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-16s matches %s\n",
				name, strings.Join(p.FilePatterns(), ", "))
		}
	},
}

func init() {
	rootCmd.AddCommand(typesCmd)
}
