package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/code-outline/internal/syntax"
)

// languagesCmd represents the languages command
var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List supported languages and file extensions",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		writeLanguages(cmd.OutOrStdout(), syntax.NewLanguages())
	},
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}

func writeLanguages(w io.Writer, langs *syntax.Languages) {
	all := langs.All()
	width := 0
	for _, lang := range all {
		width = max(width, len(lang.Name))
	}
	for _, lang := range all {
		fmt.Fprintf(w, "%-*s  %s\n", width, lang.Name, strings.Join(lang.Extensions, " "))
	}
}
