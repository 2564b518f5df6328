package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Lista os planos salvos",
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer s.Close()

	plans := s.Plans()
	if len(plans) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Nenhum plano salvo.")
		return nil
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-38s %-32s %-12s %s\n", "ID", "TÍTULO", "PROVA", "DIAS")
	for _, p := range plans {
		fmt.Fprintf(out, "%-38s %-32s %-12s %d\n", p.ID, p.Title, p.ExamDate, len(p.Schedule))
	}
	return nil
}
