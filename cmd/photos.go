package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	engine "github.com/lashpop/stylematch/internal/quiz"
	"github.com/lashpop/stylematch/internal/store"
	"github.com/lashpop/stylematch/internal/style"
)

var photosCmd = &cobra.Command{
	Use:   "photos",
	Short: "Manage the quiz photo catalog",
}

var photosAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a photo to the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		c, err := style.Parse(category)
		if err != nil {
			return err
		}
		p := store.NewPhoto{Category: c}
		p.FilePath, _ = cmd.Flags().GetString("file")
		p.AssetID, _ = cmd.Flags().GetString("asset")
		p.CropURL, _ = cmd.Flags().GetString("crop-url")
		p.Disabled, _ = cmd.Flags().GetBool("disabled")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		photo, err := st.Photos().Add(cmd.Context(), p)
		if err != nil {
			return fmt.Errorf("add photo: %w", err)
		}
		fmt.Printf("Added %s photo %s (position %d)\n", photo.Category.DisplayName(), photo.ID, photo.SortOrder)
		return nil
	},
}

var photosImportCmd = &cobra.Command{
	Use:   "import <file.json|->",
	Short: "Import photos from a JSON array",
	Long: `Import photos from a JSON array, or from stdin with "-".

Each entry has a category and at least one of asset_id, file_path or crop_url:

  [{"category": "classic", "file_path": "photos/classic-1.jpg"},
   {"category": "volume", "crop_url": "https://cdn.example.com/v1.jpg", "disabled": true}]

Nothing is imported if any entry is invalid.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var r io.Reader = os.Stdin
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			r = f
		}

		var photos []store.NewPhoto
		if err := json.NewDecoder(r).Decode(&photos); err != nil {
			return fmt.Errorf("parse %s: %w", args[0], err)
		}
		if len(photos) == 0 {
			return errors.New("no photos to import")
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		added, err := st.Photos().Import(cmd.Context(), photos)
		if err != nil {
			return fmt.Errorf("import photos: %w", err)
		}
		fmt.Printf("Imported %d photos\n", len(added))
		return nil
	},
}

var photosListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog photos by style and sort order",
	RunE: func(cmd *cobra.Command, args []string) error {
		var f store.PhotoFilter
		if category, _ := cmd.Flags().GetString("category"); category != "" {
			c, err := style.Parse(category)
			if err != nil {
				return err
			}
			f.Category = c
		}
		f.EnabledOnly, _ = cmd.Flags().GetBool("enabled")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		photos, err := st.Photos().List(cmd.Context(), f)
		if err != nil {
			return fmt.Errorf("list photos: %w", err)
		}

		fmt.Printf("%-36s  %-12s  %4s  %-7s  %s\n", "ID", "Style", "Pos", "Enabled", "Source")
		fmt.Println(strings.Repeat("─", 100))
		for _, p := range photos {
			enabled := "yes"
			if !p.Enabled {
				enabled = "no"
			}
			src := p.DisplayPath()
			if src == "" {
				src = "asset:" + p.AssetID
			}
			fmt.Printf("%-36s  %-12s  %4d  %-7s  %s\n", p.ID, p.Category.DisplayName(), p.SortOrder, enabled, src)
		}
		fmt.Printf("\n%d photos\n", len(photos))
		return nil
	},
}

var photosEnableCmd = &cobra.Command{
	Use:   "enable <id>...",
	Short: "Show photos in quizzes",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setPhotosEnabled(cmd, args, true)
	},
}

var photosDisableCmd = &cobra.Command{
	Use:   "disable <id>...",
	Short: "Hide photos from quizzes",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setPhotosEnabled(cmd, args, false)
	},
}

var photosCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that every style has enough enabled photos to start a quiz",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		counts, err := st.Photos().Counts(cmd.Context())
		if err != nil {
			return fmt.Errorf("count photos: %w", err)
		}

		fmt.Printf("%-12s  %5s  %7s\n", "Style", "Total", "Enabled")
		fmt.Println(strings.Repeat("─", 28))
		ready := true
		for _, c := range counts {
			mark := ""
			if c.Enabled < engine.MinEnabledPhotos {
				mark = "  needs " + fmt.Sprint(engine.MinEnabledPhotos-c.Enabled) + " more"
				ready = false
			}
			fmt.Printf("%-12s  %5d  %7d%s\n", c.Category.DisplayName(), c.Total, c.Enabled, mark)
		}
		fmt.Println()

		if !ready {
			return fmt.Errorf("catalog cannot start a quiz: every style needs at least %d enabled photos", engine.MinEnabledPhotos)
		}
		fmt.Println("Catalog is ready.")
		return nil
	},
}

func setPhotosEnabled(cmd *cobra.Command, ids []string, enabled bool) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	verb := "Disabled"
	if enabled {
		verb = "Enabled"
	}
	for _, id := range ids {
		if err := st.Photos().SetEnabled(cmd.Context(), id, enabled); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("photo %s not found", id)
			}
			return err
		}
		fmt.Println(verb, id)
	}
	return nil
}

func init() {
	photosAddCmd.Flags().String("category", "", "Style: classic, hybrid, wetAngel or volume (required)")
	photosAddCmd.Flags().String("file", "", "Local image path")
	photosAddCmd.Flags().String("asset", "", "Media library asset id")
	photosAddCmd.Flags().String("crop-url", "", "URL of the cropped image")
	photosAddCmd.Flags().Bool("disabled", false, "Add without showing it in quizzes")
	_ = photosAddCmd.MarkFlagRequired("category")

	photosListCmd.Flags().String("category", "", "Only list this style")
	photosListCmd.Flags().Bool("enabled", false, "Only list enabled photos")

	photosCmd.AddCommand(photosAddCmd)
	photosCmd.AddCommand(photosImportCmd)
	photosCmd.AddCommand(photosListCmd)
	photosCmd.AddCommand(photosEnableCmd)
	photosCmd.AddCommand(photosDisableCmd)
	photosCmd.AddCommand(photosCheckCmd)
}
