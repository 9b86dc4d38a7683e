package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

func (a *app) today() string {
	return time.Now().Format(dateLayout)
}

func (a *app) weightCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weight",
		Short: "Log and list body weight",
	}

	var date string
	add := &cobra.Command{
		Use:   "add <kg>",
		Short: "Log a weight",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kg, err := strconv.ParseFloat(args[0], 64)
			if err != nil || kg <= 0 {
				return fmt.Errorf("invalid weight %q", args[0])
			}
			if date == "" {
				date = a.today()
			} else if _, err := time.Parse(dateLayout, date); err != nil {
				return fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", date)
			}
			if err := a.requireLogin(cmd); err != nil {
				return err
			}
			record, err := a.services.User.AddWeightRecord(cmd.Context(), kg, date)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %.1f kg on %s\n", record.Weight, record.RecordDate)
			return nil
		},
	}
	add.Flags().StringVar(&date, "date", "", "Date YYYY-MM-DD (default today)")

	var from, to string
	list := &cobra.Command{
		Use:   "list",
		Short: "List weight records",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(cmd); err != nil {
				return err
			}
			if to == "" {
				to = a.today()
			}
			if from == "" {
				from = time.Now().AddDate(0, 0, -30).Format(dateLayout)
			}
			records, err := a.services.User.GetWeightRecords(cmd.Context(), from, to)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No weight records")
				return nil
			}
			table := newTable(cmd.OutOrStdout(), "ID", "Date", "Weight")
			for _, r := range records {
				table.Append([]string{strconv.FormatInt(r.ID, 10), r.RecordDate, fmt.Sprintf("%.1f", r.Weight)})
			}
			table.Render()
			return nil
		},
	}
	list.Flags().StringVar(&from, "from", "", "Start date (default 30 days ago)")
	list.Flags().StringVar(&to, "to", "", "End date (default today)")

	cmd.AddCommand(add, list)
	return cmd
}

func (a *app) profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit your profile",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(cmd); err != nil {
				return err
			}
			p, err := a.services.User.GetUserProfile(cmd.Context())
			if err != nil {
				return err
			}
			table := newTable(cmd.OutOrStdout(), "Field", "Value")
			table.AppendBulk([][]string{
				{"Nickname", p.Nickname},
				{"Phone", p.Phone},
				{"Age", strconv.Itoa(p.Age)},
				{"Height", fmt.Sprintf("%.0f cm", p.Height)},
				{"Weight", fmt.Sprintf("%.1f kg", p.Weight)},
				{"Target weight", fmt.Sprintf("%.1f kg", p.TargetWeight)},
				{"To lose", fmt.Sprintf("%.1f kg", p.WeightToLose())},
				{"Activity", p.ActivityLevel},
				{"Basal metabolism", kcal(p.BasalMetabolism) + " kcal"},
				{"Type", p.UserType},
			})
			table.Render()
			return nil
		},
	}

	var (
		nickname     string
		age          int
		height       float64
		weight       float64
		targetWeight float64
		activity     string
	)
	set := &cobra.Command{
		Use:   "set",
		Short: "Update profile fields given as flags",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(cmd); err != nil {
				return err
			}
			p, err := a.services.User.GetUserProfile(cmd.Context())
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("nickname") {
				p.Nickname = nickname
			}
			if flags.Changed("age") {
				p.Age = age
			}
			if flags.Changed("height") {
				p.Height = height
			}
			if flags.Changed("weight") {
				p.Weight = weight
			}
			if flags.Changed("target") {
				p.TargetWeight = targetWeight
			}
			if flags.Changed("activity") {
				p.ActivityLevel = activity
			}
			updated, err := a.services.User.UpdateUserProfile(cmd.Context(), p)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile updated, basal metabolism %s kcal\n", kcal(updated.BasalMetabolism))
			return nil
		},
	}
	set.Flags().StringVar(&nickname, "nickname", "", "Nickname")
	set.Flags().IntVar(&age, "age", 0, "Age in years")
	set.Flags().Float64Var(&height, "height", 0, "Height in cm")
	set.Flags().Float64Var(&weight, "weight", 0, "Weight in kg")
	set.Flags().Float64Var(&targetWeight, "target", 0, "Target weight in kg")
	set.Flags().StringVar(&activity, "activity", "", "Activity level, e.g. moderately_active")

	cmd.AddCommand(show, set)
	return cmd
}
