package cli

import (
	"github.com/spf13/cobra"

	"daily-energy/internal/models"
	"daily-energy/internal/service"
)

func (a *app) statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Statistics and reports",
	}

	var period string
	report := func(use, short string, fetch func(cmd *cobra.Command) (models.Statistics, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.requireLogin(cmd); err != nil {
					return err
				}
				stats, err := fetch(cmd)
				if err != nil {
					return err
				}
				renderMap(cmd.OutOrStdout(), stats)
				return nil
			},
		}
	}

	cmd.AddCommand(
		report("overview", "Overall statistics", func(cmd *cobra.Command) (models.Statistics, error) {
			return a.services.Statistics.Overview(cmd.Context())
		}),
		report("nutrition", "Nutrition analysis for a period", func(cmd *cobra.Command) (models.Statistics, error) {
			return a.services.Statistics.NutritionAnalysis(cmd.Context(), period, service.DateRange{})
		}),
		report("health", "Today's health score", func(cmd *cobra.Command) (models.Statistics, error) {
			return a.services.Statistics.HealthScore(cmd.Context(), nil)
		}),
		report("weekly", "This week's report", func(cmd *cobra.Command) (models.Statistics, error) {
			return a.services.Statistics.WeeklyReport(cmd.Context(), nil)
		}),
		report("monthly", "This month's report", func(cmd *cobra.Command) (models.Statistics, error) {
			return a.services.Statistics.MonthlyReport(cmd.Context(), nil)
		}),
	)
	cmd.PersistentFlags().StringVar(&period, "period", "week", "Period for period-based reports")
	return cmd
}
