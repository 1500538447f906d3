package cmd

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/edubridge/edubridge/internal/catalog"
	"github.com/edubridge/edubridge/internal/store"
)

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "Manage favorite subjects",
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorite subjects in saved order",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withFavorites(cmd, func(ctx context.Context, repo store.FavoriteRepo, cat *catalog.Catalog) error {
			ids, err := repo.List(ctx)
			if err != nil {
				return fmt.Errorf("list favorites: %w", err)
			}
			if len(ids) == 0 {
				fmt.Println("No favorites yet. Press F on a subject in the app, or run: edubridge favorites add <subject-id>")
				return nil
			}
			star := color.New(color.FgYellow)
			for i, id := range ids {
				star.Print("★ ")
				if sub, ok := cat.SubjectByID(id); ok {
					fmt.Printf("%d. %s %s\n", i+1, sub.Icon, sub.Title)
				} else {
					fmt.Printf("%d. %s (no longer in catalog)\n", i+1, id)
				}
			}
			return nil
		})
	},
}

var favoritesAddCmd = &cobra.Command{
	Use:   "add <subject-id>",
	Short: "Add a subject to favorites",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withFavorites(cmd, func(ctx context.Context, repo store.FavoriteRepo, cat *catalog.Catalog) error {
			id := args[0]
			if _, ok := cat.SubjectByID(id); !ok {
				return fmt.Errorf("unknown subject %q (see: edubridge subjects)", id)
			}
			if err := repo.Add(ctx, id); err != nil {
				return fmt.Errorf("add favorite: %w", err)
			}
			fmt.Printf("Added %s to favorites.\n", id)
			return nil
		})
	},
}

var favoritesRemoveCmd = &cobra.Command{
	Use:   "remove <subject-id>",
	Short: "Remove a subject from favorites",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withFavorites(cmd, func(ctx context.Context, repo store.FavoriteRepo, cat *catalog.Catalog) error {
			if err := repo.Remove(ctx, args[0]); err != nil {
				return fmt.Errorf("remove favorite: %w", err)
			}
			fmt.Printf("Removed %s from favorites.\n", args[0])
			return nil
		})
	},
}

// withFavorites opens the store and catalog and runs fn against them.
func withFavorites(cmd *cobra.Command, fn func(context.Context, store.FavoriteRepo, *catalog.Catalog) error) error {
	cat, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	return fn(cmd.Context(), st.Favorites(), cat)
}

func init() {
	favoritesCmd.AddCommand(favoritesListCmd)
	favoritesCmd.AddCommand(favoritesRemoveCmd)
	favoritesCmd.AddCommand(favoritesAddCmd)
}
