package bot

import (
	"fmt"
	"strings"

	"daily-energy/internal/models"
)

func formatSummary(s models.TodaySummary) string {
	var b strings.Builder
	b.WriteString("Today\n\n")
	fmt.Fprintf(&b, "Target: %.0f kcal\n", s.TargetCalories)
	fmt.Fprintf(&b, "Eaten: %.0f kcal\n", s.FoodIntake)
	fmt.Fprintf(&b, "Burned: %.0f kcal\n", s.ExerciseConsumption)
	fmt.Fprintf(&b, "Basal metabolism: %.0f kcal\n", s.BasalMetabolism)
	fmt.Fprintf(&b, "Remaining: %.0f kcal\n", s.RemainingCalories)
	fmt.Fprintf(&b, "Deficit: %.0f kcal", s.CalorieDeficit)
	if s.TodayWeight != nil {
		fmt.Fprintf(&b, "\nWeight: %.1f kg", *s.TodayWeight)
	}
	return b.String()
}

func formatTrend(t models.CalorieTrendResponse) string {
	if len(t.Trends) == 0 {
		return "No records in this period yet."
	}

	var b strings.Builder
	b.WriteString("Date        In    Out   Deficit\n")
	for _, d := range t.Trends {
		fmt.Fprintf(&b, "%-10s  %4.0f  %4.0f  %5.0f\n", d.Date, d.Intake, d.Consumption, d.Deficit)
	}
	fmt.Fprintf(&b, "\nAverage deficit: %.0f kcal\nTotal deficit: %.0f kcal", t.AverageDeficit, t.TotalDeficit)
	return b.String()
}

func formatProfile(p models.UserProfile, vip bool) string {
	var b strings.Builder
	name := p.Nickname
	if name == "" {
		name = p.Phone
	}
	fmt.Fprintf(&b, "%s", name)
	if vip {
		b.WriteString(" (VIP)")
	}
	b.WriteString("\n\n")
	if p.Age > 0 {
		fmt.Fprintf(&b, "Age: %d\n", p.Age)
	}
	if p.Height > 0 {
		fmt.Fprintf(&b, "Height: %.0f cm\n", p.Height)
	}
	if p.Weight > 0 {
		fmt.Fprintf(&b, "Weight: %.1f kg\n", p.Weight)
	}
	if p.TargetWeight > 0 {
		fmt.Fprintf(&b, "Target: %.1f kg (%.1f kg to go)\n", p.TargetWeight, p.WeightToLose())
	}
	if p.ActivityLevel != "" {
		fmt.Fprintf(&b, "Activity: %s\n", strings.ReplaceAll(p.ActivityLevel, "_", " "))
	}
	fmt.Fprintf(&b, "Basal metabolism: %.0f kcal", p.BasalMetabolism)
	return b.String()
}

func formatSuggestions(meal string, foods, exercises []models.Suggestion) string {
	var b strings.Builder
	if len(foods) > 0 {
		fmt.Fprintf(&b, "Ideas for %s:\n", meal)
		writeSuggestions(&b, foods)
	}
	if len(exercises) > 0 {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("Exercise ideas:\n")
		writeSuggestions(&b, exercises)
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeSuggestions(b *strings.Builder, items []models.Suggestion) {
	for _, s := range items {
		fmt.Fprintf(b, "- %s", s.Name)
		if s.Amount != "" {
			fmt.Fprintf(b, ", %s", s.Amount)
		}
		fmt.Fprintf(b, " (%.0f kcal)", s.Calories)
		if s.Reason != "" {
			fmt.Fprintf(b, ": %s", s.Reason)
		}
		b.WriteString("\n")
	}
}

func formatRecognition(r models.RecognitionWithCalories) string {
	if len(r.Recognition.Foods) == 0 {
		return "I could not find any food in this photo."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d item(s), confidence %.0f%%:\n", len(r.Recognition.Foods), r.Recognition.Confidence*100)
	var total float64
	for i, food := range r.Recognition.Foods {
		kcal := food.Calories
		if i < len(r.Calories) && r.Calories[i].Calories > 0 {
			kcal = r.Calories[i].Calories
		}
		total += kcal
		fmt.Fprintf(&b, "- %s", food.Name)
		if food.Weight > 0 {
			fmt.Fprintf(&b, ", %.0f g", food.Weight)
		}
		fmt.Fprintf(&b, ": %.0f kcal\n", kcal)
	}
	fmt.Fprintf(&b, "\nTotal: %.0f kcal\nLog it with /food <name> <grams>.", total)
	return b.String()
}
