package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent study questions and quiz results",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		ctx := cmd.Context()

		s, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		bold := color.New(color.Bold)
		dim := color.New(color.Faint)
		red := color.New(color.FgRed)

		turns, err := s.ChatRepo().RecentTurns(ctx, limit)
		if err != nil {
			return fmt.Errorf("query chat turns: %w", err)
		}
		bold.Println("Study Questions")
		fmt.Println(strings.Repeat("─", 72))
		if len(turns) == 0 {
			dim.Println("No questions asked yet.")
		}
		for _, t := range turns {
			fmt.Printf("%s  %s", dim.Sprint(t.Timestamp.Local().Format("2006-01-02 15:04")), truncate(oneLine(t.UserText), 52))
			if !t.Success {
				red.Print("  (failed)")
			}
			fmt.Println()
		}

		summary, err := s.QuizRepo().Summary(ctx)
		if err != nil {
			return fmt.Errorf("query quiz summary: %w", err)
		}
		attempts, err := s.QuizRepo().RecentAttempts(ctx, limit)
		if err != nil {
			return fmt.Errorf("query quiz attempts: %w", err)
		}

		fmt.Println()
		bold.Println("Quizzes")
		fmt.Println(strings.Repeat("─", 72))
		if len(attempts) == 0 {
			dim.Println("No quizzes taken yet.")
			return nil
		}
		for _, a := range attempts {
			topic := a.Topic
			if topic == "" {
				topic = "general"
			}
			fmt.Printf("%s  %-6s  %-24s  %2d/%-2d  %s\n",
				dim.Sprint(a.Timestamp.Local().Format("2006-01-02 15:04")),
				a.Level, truncate(topic, 24), a.Correct, a.Total,
				bandColor(a.Band).Sprintf("%3d%%", a.Percentage))
		}

		fmt.Println(strings.Repeat("─", 72))
		fmt.Printf("%d quizzes, %d/%d correct, best %d%%\n",
			summary.Attempts, summary.Correct, summary.Questions, summary.BestPercentage)
		if len(summary.ByLevel) > 0 {
			levels := make([]string, 0, len(summary.ByLevel))
			for l := range summary.ByLevel {
				levels = append(levels, l)
			}
			sort.Strings(levels)
			parts := make([]string, 0, len(levels))
			for _, l := range levels {
				parts = append(parts, fmt.Sprintf("%s %d", l, summary.ByLevel[l]))
			}
			dim.Println("By level: " + strings.Join(parts, ", "))
		}
		return nil
	},
}

func bandColor(band string) *color.Color {
	switch band {
	case "good":
		return color.New(color.FgGreen)
	case "ok":
		return color.New(color.FgYellow)
	}
	return color.New(color.FgRed)
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of entries to show per list")
}
