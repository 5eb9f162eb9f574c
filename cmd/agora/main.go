// agora est le client terminal de l'API: création de challenge, visite par
// lien de partage, identification, log du jour et affichage du classement.
// L'identité choisie et les challenges récents sont persistés localement.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/djwooster/agora-leaderboard/internal/clientstore"
	"github.com/djwooster/agora-leaderboard/internal/logger"
)

var (
	serverURL string
	statePath string
)

func main() {
	root := &cobra.Command{
		Use:   "agora",
		Short: "Group fitness challenges, simplified",
	}

	defaultState, err := clientstore.DefaultPath()
	if err != nil {
		defaultState = ".agora-state.json"
	}

	root.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "Agora API base URL")
	root.PersistentFlags().StringVar(&statePath, "state", defaultState, "client state file")

	root.AddCommand(createCmd())
	root.AddCommand(openCmd())
	root.AddCommand(joinCmd())
	root.AddCommand(logCmd())
	root.AddCommand(boardCmd())
	root.AddCommand(recentCmd())

	if err := root.Execute(); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

func openStore() (*clientstore.Store, error) {
	return clientstore.Open(statePath)
}
