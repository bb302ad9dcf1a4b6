package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/jask/zams/internal/repository"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List AI models",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		defer func() { _ = e.Close() }()

		rows, err := e.repos.Models.List(cmd.Context())
		if err != nil {
			return err
		}
		return printModels(cmd.OutOrStdout(), rows)
	},
}

func printModels(w io.Writer, rows []repository.Model) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No models yet")
		return err
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Name", "Type", "Base Model", "Status", "Created On", "Temp", "Max Tokens")
	for _, m := range rows {
		t.Row(m.Name, m.Type, m.BaseModel, m.Status, m.CreatedAt, fmt.Sprintf("%.1f", m.Temperature), fmt.Sprint(m.MaxTokens))
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}
