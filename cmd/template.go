package cmd

import (
	"fmt"
	"os"

	"content-manager/feature/importer"

	"github.com/spf13/cobra"
)

var templateOut string

// templateCmd writes the CSV import template to a file.
var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Write the CSV import template",
	Long:  `Writes a CSV file with the expected import header and a sample row.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Create(templateOut)
		if err != nil {
			return fmt.Errorf("failed to create template file: %w", err)
		}
		defer f.Close()

		if err := importer.WriteTemplate(f); err != nil {
			return fmt.Errorf("failed to write template: %w", err)
		}

		fmt.Printf("Template written to %s\n", templateOut)
		return nil
	},
}

func init() {
	templateCmd.Flags().StringVar(&templateOut, "out", "import-template.csv", "Output path for the template CSV")

	RootCmd.AddCommand(templateCmd)
}
