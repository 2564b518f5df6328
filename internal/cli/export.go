package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sadopc/estudai/internal/export"
	"github.com/sadopc/estudai/internal/plan"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Exporta um plano para Markdown",
	Long:  "Exporta o plano com o id (ou prefixo único de id) informado para um arquivo Markdown.",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "arquivo de saída (padrão: derivado do título)")
}

func runExport(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer s.Close()

	p, err := findPlan(s.Plans(), args[0])
	if err != nil {
		return err
	}

	path := exportOut
	if path == "" {
		path = export.FileName(p)
	}
	if err := export.WriteFile(p, path); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exportado para %s\n", path)
	return nil
}

// findPlan resolves an exact id or a unique id prefix.
func findPlan(plans []plan.StudyPlan, id string) (plan.StudyPlan, error) {
	var matches []plan.StudyPlan
	for _, p := range plans {
		if p.ID == id {
			return p, nil
		}
		if strings.HasPrefix(p.ID, id) {
			matches = append(matches, p)
		}
	}

	switch len(matches) {
	case 0:
		return plan.StudyPlan{}, fmt.Errorf("plano não encontrado: %s", id)
	case 1:
		return matches[0], nil
	default:
		return plan.StudyPlan{}, fmt.Errorf("mais de um plano corresponde a '%s'", id)
	}
}
