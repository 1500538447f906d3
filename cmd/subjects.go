package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/edubridge/edubridge/internal/catalog"
)

var subjectsCmd = &cobra.Command{
	Use:   "subjects",
	Short: "List the stages and subjects in the lesson catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.Load()
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}

		stageColor := color.New(color.FgGreen, color.Bold)
		dimColor := color.New(color.Faint)

		for _, stage := range cat.Stages() {
			stageColor.Printf("%s %s\n", stage.Icon, stage.Title)
			for i, sub := range cat.SubjectsForStage(stage.ID) {
				fmt.Printf("   %d. %s %s", i+1, sub.Icon, sub.Title)
				dimColor.Printf("  — %s (%d lessons)\n", sub.Description, cat.LessonCount(sub.ID))
			}
			fmt.Println()
		}
		return nil
	},
}
