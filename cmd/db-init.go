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
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/eslsoft/lingodesk/internal/infrastructure/config"
	"github.com/eslsoft/lingodesk/internal/infrastructure/database"
)

// dbInitCmd initializes the database schema then optionally imports lesson data
var dbInitCmd = &cobra.Command{
	Use:   "db-init",
	Short: "初始化数据库并导入课程数据",
	Long:  "创建复习相关的数据表。通过 --seed 可从 JSON 文件导入课程的词汇与语法。注意: go-sqlite3 需要 CGO_ENABLED=1 构建。",
	RunE: func(cmd *cobra.Command, args []string) error {
		seedPath, _ := cmd.Flags().GetString("seed")
		schemaOnly, _ := cmd.Flags().GetBool("schema-only")

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("加载配置失败: %w", err)
		}

		db, closeDB, err := database.NewConnection(cfg)
		if err != nil {
			return fmt.Errorf("打开数据库失败: %w", err)
		}
		defer closeDB()

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if err := database.InitSchema(ctx, db); err != nil {
			return err
		}
		log.Println("数据库初始化完成")

		if schemaOnly || seedPath == "" {
			return nil
		}
		return importLessons(ctx, db, seedPath)
	},
}

func init() {
	rootCmd.AddCommand(dbInitCmd)
	dbInitCmd.Flags().String("seed", "", "课程 JSON 文件路径")
	dbInitCmd.Flags().Bool("schema-only", false, "仅建表，不导入课程数据")
}

// seedFile is the lesson JSON layout produced by the book importer.
type seedFile struct {
	Lessons []seedLesson `json:"lessons"`
}

type seedLesson struct {
	BookID       int64            `json:"book_id"`
	LessonNumber int              `json:"lesson_number"`
	Title        string           `json:"title"`
	Vocabulary   []seedVocabulary `json:"vocabulary"`
	Grammar      []seedGrammar    `json:"grammar"`
}

type seedVocabulary struct {
	Word         string `json:"word"`
	Kana         string `json:"kana"`
	Meaning      string `json:"meaning"`
	PartOfSpeech string `json:"part_of_speech"`
}

type seedGrammar struct {
	Title       string `json:"title"`
	Explanation string `json:"explanation"`
}

func importLessons(ctx context.Context, db *sql.DB, path string) error {
	start := time.Now()
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("读取课程文件失败: %w", err)
	}
	var seed seedFile
	if err := json.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("解析课程文件失败: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var vocabTotal, grammarTotal int
	for _, lesson := range seed.Lessons {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO lessons (book_id, lesson_number, title) VALUES (?, ?, ?)`,
			lesson.BookID, lesson.LessonNumber, lesson.Title)
		if err != nil {
			return fmt.Errorf("导入课程 %q 失败: %w", lesson.Title, err)
		}
		lessonID, err := res.LastInsertId()
		if err != nil {
			return err
		}

		for _, v := range lesson.Vocabulary {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO vocabulary (lesson_id, word, kana, meaning, part_of_speech) VALUES (?, ?, ?, ?, ?)`,
				lessonID, v.Word, v.Kana, v.Meaning, v.PartOfSpeech); err != nil {
				return fmt.Errorf("导入词汇 %q 失败: %w", v.Word, err)
			}
			vocabTotal++
		}
		for _, g := range lesson.Grammar {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO grammar (lesson_id, title, explanation) VALUES (?, ?, ?)`,
				lessonID, g.Title, g.Explanation); err != nil {
				return fmt.Errorf("导入语法 %q 失败: %w", g.Title, err)
			}
			grammarTotal++
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	log.Printf("导入完成: %d 课, 词汇 %d 条, 语法 %d 条, 耗时 %s",
		len(seed.Lessons), vocabTotal, grammarTotal, time.Since(start))
	return nil
}
