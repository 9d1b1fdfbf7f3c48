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
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/eslsoft/lingodesk/internal/app"
	"github.com/eslsoft/lingodesk/internal/entity"
	"github.com/eslsoft/lingodesk/pkg/srs"
)

// reviewCmd runs a review session in the terminal, same engine as the UI
var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Run a review session in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		container, cleanup, err := app.Initialize()
		if err != nil {
			return err
		}
		defer cleanup()

		ctx := cmd.Context()
		session, err := container.Review.StartSession(ctx)
		if err != nil {
			if errors.Is(err, entity.ErrNoDueItems) {
				fmt.Println("Nothing due for review.")
				return nil
			}
			return err
		}
		fmt.Printf("Review session started: %d item(s) due.\n\n", session.Progress.Total)

		reader := bufio.NewReader(os.Stdin)
		for {
			card, ok, err := container.Review.CurrentCard(session.ID)
			if err != nil {
				return err
			}
			if !ok {
				break
			}

			progress := session.Progress
			fmt.Printf("[%d/%d] %s\n", progress.Current+1, progress.Total, cardFront(card))
			fmt.Print("  press enter to reveal...")
			shown := time.Now()
			if _, err := reader.ReadString('\n'); err != nil {
				return err
			}
			fmt.Printf("  %s\n", cardBack(card))

			result := srs.Result{ResponseTime: time.Since(shown)}
			result.Correct = askYesNo(reader, "  did you know it? [y/n] ")
			result.Difficulty = askDifficulty(reader)

			session, err = container.Review.SubmitResult(session.ID, result)
			if err != nil {
				return err
			}
			fmt.Println()
		}

		summary, err := container.Review.CompleteSession(ctx, session.ID)
		if err != nil {
			return err
		}
		fmt.Printf("Session complete: %d correct, %d wrong in %s.\n",
			summary.Stats.CorrectCount, summary.Stats.IncorrectCount,
			summary.Stats.TotalTime.Round(time.Second))
		if summary.Stats.AverageResponseTime > 0 {
			fmt.Printf("Average answer time: %s.\n", summary.Stats.AverageResponseTime.Round(time.Millisecond))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reviewCmd)
}

func cardFront(item *entity.ReviewItem) string {
	switch {
	case item.Data.Vocabulary != nil:
		return item.Data.Vocabulary.Word
	case item.Data.Grammar != nil:
		return item.Data.Grammar.Title
	default:
		return fmt.Sprintf("%s #%d", item.EntityType, item.ID)
	}
}

func cardBack(item *entity.ReviewItem) string {
	switch {
	case item.Data.Vocabulary != nil:
		v := item.Data.Vocabulary
		if v.Kana != "" {
			return fmt.Sprintf("%s / %s", v.Kana, v.Meaning)
		}
		return v.Meaning
	case item.Data.Grammar != nil:
		return item.Data.Grammar.Explanation
	default:
		return ""
	}
}

func askYesNo(reader *bufio.Reader, prompt string) bool {
	for {
		fmt.Print(prompt)
		line, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}
	}
}

func askDifficulty(reader *bufio.Reader) srs.Difficulty {
	for {
		fmt.Print("  how hard was it? [e]asy / [m]edium / [h]ard ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return srs.DifficultyMedium
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "e", "easy":
			return srs.DifficultyEasy
		case "m", "medium", "":
			return srs.DifficultyMedium
		case "h", "hard":
			return srs.DifficultyHard
		}
	}
}
