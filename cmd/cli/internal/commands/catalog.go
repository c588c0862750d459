package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/mockuments/internal/catalog"
	"github.com/MrJamesThe3rd/mockuments/internal/region"
)

func (cli *CLI) newCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List document categories, types and regions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
			cell := lipgloss.NewStyle().Padding(0, 1)

			styleFunc := func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return header
				}

				return cell
			}

			types := table.New().
				Headers("CATEGORY", "NAME", "TYPES", "MANUAL").
				StyleFunc(styleFunc)

			for _, e := range catalog.Default().Entries() {
				manual := "yes"
				if !e.ManualAllowed {
					manual = "no"
				}

				types.Row(string(e.Code), e.Name, strings.Join(e.TypeNames(), ", "), manual)
			}

			regions := table.New().
				Headers("REGION", "NAME", "CURRENCY", "TAX", "DATES").
				StyleFunc(styleFunc)

			for _, p := range region.Default().Profiles() {
				regions.Row(p.Code, p.Name, p.Currency, fmt.Sprintf("%s %s%%", p.TaxLabel, p.TaxPercent()), string(p.DateFormat))
			}

			fmt.Fprintln(cmd.OutOrStdout(), types.Render())
			fmt.Fprintln(cmd.OutOrStdout(), regions.Render())

			return nil
		},
	}
}
