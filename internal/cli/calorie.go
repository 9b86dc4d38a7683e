package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"daily-energy/internal/models"
)

func (a *app) todayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's intake, exercise and remaining calories",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(cmd); err != nil {
				return err
			}
			s, err := a.services.Calorie.GetTodaySummary(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Target: %s kcal\n", kcal(s.TargetCalories))
			fmt.Fprintf(out, "Intake: %s kcal\n", kcal(s.FoodIntake))
			fmt.Fprintf(out, "Exercise: %s kcal\n", kcal(s.ExerciseConsumption))
			fmt.Fprintf(out, "Basal: %s kcal\n", kcal(s.BasalMetabolism))
			fmt.Fprintf(out, "Remaining: %s kcal\n", kcal(s.RemainingCalories))
			fmt.Fprintf(out, "Deficit: %s kcal\n", kcal(s.CalorieDeficit))
			if s.TodayWeight != nil {
				fmt.Fprintf(out, "Weight: %.1f kg\n", *s.TodayWeight)
			}
			return nil
		},
	}
}

func (a *app) trendCmd() *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Show the calorie trend for the last days",
		RunE: func(cmd *cobra.Command, args []string) error {
			if days <= 0 {
				return fmt.Errorf("--days must be > 0")
			}
			if err := a.requireLogin(cmd); err != nil {
				return err
			}
			trend, err := a.services.Calorie.GetCalorieTrend(cmd.Context(), days)
			if err != nil {
				return err
			}
			if len(trend.Trends) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No records in this period")
				return nil
			}
			table := newTable(cmd.OutOrStdout(), "Date", "Intake", "Burned", "Deficit")
			for _, d := range trend.Trends {
				table.Append([]string{d.Date, kcal(d.Intake), kcal(d.Consumption), kcal(d.Deficit)})
			}
			table.SetFooter([]string{"", "", "Average", kcal(trend.AverageDeficit)})
			table.Render()
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 7, "Number of days")
	return cmd
}

func (a *app) foodCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "food",
		Short: "Log and look up foods",
	}

	var (
		weight   float64
		meal     string
		calories float64
	)
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Log a food for today",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(cmd); err != nil {
				return err
			}
			name := strings.Join(args, " ")
			var (
				record models.CalorieRecord
				err    error
			)
			if calories > 0 {
				record, err = a.services.Calorie.AddFoodIntake(cmd.Context(), models.FoodIntakeRequest{
					FoodName:   name,
					Weight:     weight,
					Calories:   calories,
					MealType:   meal,
					RecordTime: a.today(),
				})
			} else {
				record, err = a.services.Calorie.QuickAddFood(cmd.Context(), name, weight, meal)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s (%.0f g, %s): %s kcal [id %d]\n", name, weight, meal, kcal(record.Calories), record.ID)
			return nil
		},
	}
	add.Flags().Float64VarP(&weight, "weight", "w", 100, "Weight in grams")
	add.Flags().StringVarP(&meal, "meal", "m", models.MealSnack, "Meal: breakfast, lunch, dinner or snack")
	add.Flags().Float64Var(&calories, "calories", 0, "Calories, looked up by the server when omitted")

	search := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search the food database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(cmd); err != nil {
				return err
			}
			foods, err := a.services.Calorie.SearchFood(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(foods) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No foods found")
				return nil
			}
			table := newTable(cmd.OutOrStdout(), "ID", "Name", "kcal/100g", "Category")
			for _, f := range foods {
				table.Append([]string{strconv.FormatInt(f.ID, 10), f.Name, kcal(f.CaloriesPer100g), f.Category})
			}
			table.Render()
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete <record-id>",
		Short: "Delete a food record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.requireLogin(cmd); err != nil {
				return err
			}
			ok, err := a.services.Calorie.DeleteCalorieRecord(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("record %d was not deleted", id)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted record %d\n", id)
			return nil
		},
	}

	cmd.AddCommand(add, search, del)
	return cmd
}

func (a *app) exerciseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exercise",
		Short: "Log and look up exercises",
	}

	var duration int
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Log an exercise for today",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if duration <= 0 {
				return fmt.Errorf("--minutes must be > 0")
			}
			if err := a.requireLogin(cmd); err != nil {
				return err
			}
			name := strings.Join(args, " ")
			record, err := a.services.Calorie.QuickAddExercise(cmd.Context(), name, duration)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s (%d min): %s kcal burned [id %d]\n", name, duration, kcal(record.Calories), record.ID)
			return nil
		},
	}
	add.Flags().IntVar(&duration, "minutes", 30, "Duration in minutes")

	search := &cobra.Command{
		Use:   "search [keyword]",
		Short: "Search exercises, or list popular ones without a keyword",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(cmd); err != nil {
				return err
			}
			var (
				list []models.ExerciseInfo
				err  error
			)
			if len(args) == 0 {
				list, err = a.services.Calorie.GetPopularExercises(cmd.Context())
			} else {
				list, err = a.services.Calorie.SearchExercise(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No exercises found")
				return nil
			}
			table := newTable(cmd.OutOrStdout(), "ID", "Name", "kcal/30min", "Category")
			for _, e := range list {
				table.Append([]string{strconv.FormatInt(e.ID, 10), e.Name, kcal(e.CaloriesPer30min), e.Category})
			}
			table.Render()
			return nil
		},
	}

	cmd.AddCommand(add, search)
	return cmd
}

func parseID(value string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", value)
	}
	if v <= 0 {
		return 0, fmt.Errorf("id must be > 0")
	}
	return v, nil
}
