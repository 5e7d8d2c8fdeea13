package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rahul4469/truthguardian/internal/models"
	"github.com/spf13/cobra"
)

var analyzeJSON bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze [text]",
	Short: "Analyze the credibility of news text",
	Long: `Sends the given text to the configured model and prints the verdict.

With no arguments, or a single "-", the text is read from stdin.

Example:
  truthguardian analyze "Scientists confirm the moon is made of cheese"
  cat article.txt | truthguardian analyze --json`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the result as JSON")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	text, err := readText(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	analyzer, err := newAnalyzer(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}

	session := models.NewAnalysisSession()
	if err := session.Run(cmd.Context(), text, analyzer.Analyze); err != nil {
		if ve, ok := models.IsValidationError(err); ok {
			return fmt.Errorf("%s: %s", ve.Title, ve.Message)
		}
		return fmt.Errorf("analysis failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if analyzeJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(session.Result())
	}

	_, err = fmt.Fprintln(out, renderVerdict(session.Result()))
	return err
}

// readText joins args, or reads r when there are none.
func readText(r io.Reader, args []string) (string, error) {
	if len(args) > 0 && !(len(args) == 1 && args[0] == "-") {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

var verdictColors = map[string]lipgloss.Color{
	"green": lipgloss.Color("#16A34A"),
	"amber": lipgloss.Color("#F59E0B"),
	"red":   lipgloss.Color("#DC2626"),
}

var verdictIcons = map[string]string{
	"check": "✓",
	"alert": "⚠",
	"cross": "✕",
}

// renderVerdict formats a result for the terminal.
func renderVerdict(result *models.AnalysisResult) string {
	v := result.Verdict()

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(verdictColors[v.Color]).
		Render(fmt.Sprintf("%s %s  %d%%", verdictIcons[v.Icon], v.Title, v.Score))
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(v.Description)
	b.WriteString("\n")
	if result.Explanation != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Bold(true).Render("AI Analysis:"))
		b.WriteString("\n")
		b.WriteString(result.Explanation)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(muted.Render("Verification Tips:"))
	for _, tip := range models.VerificationTips {
		b.WriteString("\n")
		b.WriteString(muted.Render("  - " + tip))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(verdictColors[v.Color]).
		Padding(0, 1).
		Render(b.String())
}
