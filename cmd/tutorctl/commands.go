package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/noah-isme/tutor-api/internal/dto"
	"github.com/noah-isme/tutor-api/internal/qna"
	"github.com/noah-isme/tutor-api/internal/service"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the lesson and question tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				fmt.Fprintln(cmd.OutOrStdout(), "database migrated")
				return nil
			})
		},
	}
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the sample lessons that do not exist yet",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				seeder := service.NewSeedService(a.lessons, a.catalogue, true, "", a.logger)
				created, err := seeder.SeedSamples(ctx)
				if err != nil {
					return fmt.Errorf("seed lessons: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created %d lesson(s)\n", created)
				return nil
			})
		},
	}
}

func newAddQuestionsCmd() *cobra.Command {
	var lessonTitle, path string

	cmd := &cobra.Command{
		Use:   "add-questions",
		Short: "Append questions from a JSON object of question to answer",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			pairs, err := qna.Decode(data)
			if err != nil {
				return fmt.Errorf("parse %s: %w", path, err)
			}

			return withApp(cmd, func(ctx context.Context, a *app) error {
				questions := service.NewQuestionService(a.lessons, a.questions, a.publisher, a.logger)
				added, err := questions.AddFromPairs(ctx, pairs, lessonTitle)
				if err != nil {
					return fmt.Errorf("add questions: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "added %d question(s) to %q\n", added, lessonTitle)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&lessonTitle, "lesson", "", "Exact lesson title")
	cmd.Flags().StringVar(&path, "file", "", "Path to a JSON object file")
	_ = cmd.MarkFlagRequired("lesson")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newLessonsCmd() *cobra.Command {
	var grade int

	cmd := &cobra.Command{
		Use:   "lessons",
		Short: "List lessons",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				summaries, err := a.catalogue.List(ctx, dto.LessonListRequest{Grade: grade})
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				for _, lesson := range summaries {
					fmt.Fprintf(out, "%s\t%d\t%s\n", lesson.ID, lesson.GradeLevel, lesson.Title)
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&grade, "grade", 0, "Only list lessons for this grade level")

	return cmd
}
