package cli

import (
	"github.com/spf13/cobra"

	"github.com/sadopc/estudai/internal/store"
)

var rootCmd = &cobra.Command{
	Use:     "estudai",
	Short:   "Gerador e organizador de planos de estudo",
	Long:    `Estudai gera cronogramas de estudo dia a dia para suas provas e os organiza em um calendário. Sem argumentos, abre a interface interativa.`,
	Version: "0.1.0",
}

// dbPath overrides the default database location (useful for scripts and
// tests).
var dbPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "caminho do banco de dados")
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(exportCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func openStore() (*store.Store, error) {
	path := dbPath
	if path == "" {
		var err error
		path, err = store.DefaultDBPath()
		if err != nil {
			return nil, err
		}
	}
	return store.New(path)
}
