package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cbroglie/mustache"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/neilberkman/scjournal/internal/core/format"
	"github.com/neilberkman/scjournal/internal/core/models"
)

var (
	exportSession string
	exportFormat  string
	exportOutput  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export sessions as JSON, YAML or markdown",
	Long: `Export the whole journal, or one session, to stdout or a file.

JSON output is the journal file format read by 'scjournal import'.
Markdown uses export_template.md from the config directory when present.

Examples:
  scjournal export > journal.json
  scjournal export --format yaml -o journal.yaml
  scjournal export --session 01JT8Q --format md`,
	Args: cobra.NoArgs,
	RunE: withApp(runExport),
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportSession, "session", "", "Export a single session (ID or prefix)")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Output format: json, yaml or md")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path (default: stdout)")
}

func runExport(app *appContext, args []string) error {
	journal := models.NewJournal()
	if exportSession != "" {
		stored, err := app.db.GetSession(exportSession)
		if err != nil {
			return err
		}
		journal.Add(stored.Session)
	} else {
		loaded, err := app.db.LoadJournal()
		if err != nil {
			return fmt.Errorf("failed to load journal: %w", err)
		}
		journal = loaded
	}

	if exportFormat == "json" && exportOutput != "" {
		if err := journal.SaveToFile(exportOutput); err != nil {
			return err
		}
		fmt.Fprintf(app.errOut, "Exported %d session(s) to %s\n", journal.Len(), exportOutput)
		return nil
	}

	out := app.out
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			_ = f.Close()
		}()
		out = f
	}

	var err error
	switch strings.ToLower(exportFormat) {
	case "json":
		err = writeJSON(out, journal.Records())
	case "yaml", "yml":
		err = writeYAML(out, journal.Records())
	case "md", "markdown":
		err = writeMarkdown(out, app, journal)
	default:
		return fmt.Errorf("unknown format %q (use json, yaml or md)", exportFormat)
	}
	if err != nil {
		return err
	}

	if exportOutput != "" {
		fmt.Fprintf(app.errOut, "Exported %d session(s) to %s\n", journal.Len(), exportOutput)
	}
	return nil
}

func writeJSON(w io.Writer, records []models.Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(records)
}

func writeYAML(w io.Writer, records []models.Record) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}

// templateData is the mustache context for one session
func templateData(app *appContext, s *models.Session) map[string]interface{} {
	duration, ended := s.Duration()
	if !ended {
		duration = "In progress"
	}

	data := map[string]interface{}{
		"ship":       s.Ship,
		"location":   s.Location,
		"start":      app.formatTime(s.StartTime),
		"ended":      ended,
		"duration":   duration,
		"earnings":   format.Currency(s.Earnings),
		"expenses":   format.Currency(s.Expenses),
		"net_profit": format.Currency(s.NetProfit()),
		"activities": s.Activities,
		"notes":      s.Notes,
		"summary":    s.DescribeShort(),
	}
	if s.EndTime != nil {
		data["end"] = app.formatTime(*s.EndTime)
	}
	return data
}

func writeMarkdown(w io.Writer, app *appContext, journal *models.Journal) error {
	for i, s := range journal.Sessions(0) {
		rendered, err := mustache.Render(app.cfg.ExportTemplate, templateData(app, s))
		if err != nil {
			return fmt.Errorf("failed to render template: %w", err)
		}
		if i > 0 {
			if _, err := io.WriteString(w, "\n---\n\n"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, rendered); err != nil {
			return err
		}
	}
	return nil
}
