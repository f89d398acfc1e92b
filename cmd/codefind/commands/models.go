package commands

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/codefind-ai/codefind/internal/models"
)

var modelsCmd = &cobra.Command{
	Use:   "models [query]",
	Short: "List available Bedrock models",
	Long: `List the Bedrock models CodeFind knows about.

Examples:
  codefind models              # List all models
  codefind models claude       # Filter by name or ID
  codefind models meta         # Filter by family`,
	RunE: runModelsList,
}

func runModelsList(cmd *cobra.Command, args []string) error {
	var query string
	if len(args) > 0 {
		query = strings.ToLower(args[0])
	}

	all := models.Catalog()
	var filtered []models.Model
	for _, m := range all {
		if query != "" && !matchesQuery(m, query) {
			continue
		}
		filtered = append(filtered, m)
	}

	if len(filtered) == 0 {
		if suggestions := models.Suggest(query, 3); len(suggestions) > 0 {
			return fmt.Errorf("no models match %q. Did you mean: %s", query, strings.Join(suggestions, ", "))
		}
		return fmt.Errorf("no models match %q", query)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FAMILY\tNAME\tID\tCONTEXT\tMAX OUTPUT\tFEATURES\t")
	for _, m := range filtered {
		features := ""
		if m.SupportsVision {
			features += "vision "
		}
		if m.SupportsReasoning {
			features += "reasoning "
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%dk\t%d\t%s\t\n",
			m.Family,
			m.Name,
			m.ID,
			m.ContextLength/1000,
			m.MaxOutputTokens,
			features,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nDefault: %s\n", models.DefaultModelID)
	return nil
}

func matchesQuery(m models.Model, query string) bool {
	return strings.Contains(strings.ToLower(m.ID), query) ||
		strings.Contains(strings.ToLower(m.Name), query) ||
		strings.Contains(strings.ToLower(m.Family), query)
}
