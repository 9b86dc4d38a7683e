package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func (a *app) recognizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recognize <image>",
		Short: "Recognize the food in a photo and look up its calories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			image, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read image: %w", err)
			}
			if err := a.requireLogin(cmd); err != nil {
				return err
			}

			fmt.Fprintln(cmd.ErrOrStderr(), "Analyzing...")
			result, err := a.services.AI.RecognizeFoodAndGetCalories(cmd.Context(), image)
			if err != nil {
				return err
			}
			if len(result.Recognition.Foods) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No food recognized")
				return nil
			}

			table := newTable(cmd.OutOrStdout(), "Food", "Weight", "kcal", "Protein", "Fat", "Carbs")
			var total float64
			for i, f := range result.Recognition.Foods {
				c := result.Calories[i]
				total += c.Calories
				table.Append([]string{
					f.Name,
					fmt.Sprintf("%.0f g", f.Weight),
					kcal(c.Calories),
					fmt.Sprintf("%.1f", c.Protein),
					fmt.Sprintf("%.1f", c.Fat),
					fmt.Sprintf("%.1f", c.Carbs),
				})
			}
			table.SetFooter([]string{"", "Total", kcal(total), "", "", ""})
			table.Render()
			fmt.Fprintf(cmd.OutOrStdout(), "Confidence: %.0f%%\n", result.Recognition.Confidence*100)
			return nil
		},
	}
}
