/*
Copyright © 2025 Ambor <saltbo@foxmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eslsoft/lingodesk/internal/app"
	"github.com/eslsoft/lingodesk/pkg/srs"
)

// statsCmd prints study statistics and the upcoming review load
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show study statistics and the upcoming review load",
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")

		container, cleanup, err := app.Initialize()
		if err != nil {
			return err
		}
		defer cleanup()

		ctx := cmd.Context()
		stats, err := container.Review.StudyStats(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("Items:      %d total\n", stats.TotalItems)
		fmt.Printf("Mastered:   %d\n", stats.MasteredItems)
		fmt.Printf("Reviewing:  %d\n", stats.ReviewingItems)
		fmt.Printf("Learning:   %d\n", stats.LearningItems)
		fmt.Printf("Due today:  %d (%d overdue)\n\n", stats.TodayReviews, stats.Overdue)

		for _, entityType := range []srs.EntityType{srs.EntityVocabulary, srs.EntityGrammar} {
			summary, err := container.Review.MasterySummary(ctx, entityType)
			if err != nil {
				return err
			}
			fmt.Printf("%-12s %d total, %d mastered, %d familiar, %d unknown\n",
				string(entityType)+":", summary.Total, summary.Mastered, summary.Familiar, summary.Unknown)
		}
		fmt.Println()

		load, err := container.Review.Forecast(ctx, days)
		if err != nil {
			return err
		}
		fmt.Println("Upcoming reviews:")
		for _, day := range load {
			fmt.Printf("  %s  %3d  %s\n", day.Date, day.Count, strings.Repeat("#", day.Count))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().Int("days", 7, "forecast horizon in days")
}
