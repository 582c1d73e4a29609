package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/neilberkman/scjournal/internal/core/importer"
)

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Import journal files",
	Long: `Import a journal file, or every .json journal under a directory.

Journal files are JSON arrays of session records as written by
'scjournal export'. Files already imported are skipped.

Examples:
  scjournal import journal.json
  scjournal import ~/Documents/sc-journals`,
	Args: cobra.ExactArgs(1),
	RunE: withApp(runImport),
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(app *appContext, args []string) error {
	path := args[0]
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	imp := importer.New(app.db)
	imp.SetWarningWriter(app.errOut)

	if !info.IsDir() {
		result, err := imp.ImportFile(path)
		if err != nil {
			return fmt.Errorf("failed to import %s: %w", path, err)
		}
		if result.Skipped {
			fmt.Fprintf(app.out, "Already imported: %s\n", path)
			return nil
		}
		fmt.Fprintf(app.out, "Imported %d session(s), %d activities from %s\n", result.Sessions, result.Activities, path)
		return nil
	}

	files, err := importer.FindJournalFiles(path)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintf(app.out, "No journal files found in %s\n", path)
		return nil
	}

	progress := importer.NewProgressReporter(app.errOut, len(files))
	results, err := imp.ImportDirectory(path, progress)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	progress.Finish()

	var sessions, skipped int
	for _, r := range results {
		sessions += r.Sessions
		if r.Skipped {
			skipped++
		}
	}
	fmt.Fprintf(app.out, "Imported %d session(s) from %d file(s), %d already imported\n",
		sessions, len(results)-skipped, skipped)
	return nil
}
