package cli

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sawitlabs/petamap/pkg/errors"
	"github.com/sawitlabs/petamap/pkg/layout"
)

// editCommand creates the interactive layout editor command.
func (c *CLI) editCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit [file]",
		Short: "Edit a layout file interactively",
		Long: `Interactive terminal editor for layout files.

Elements are moved and resized in normalized page coordinates. Changes are
held in memory until saved; quitting with unsaved changes asks once.

If the file does not exist it is created from the shipped defaults on save.

Examples:
  petamap edit                # edit layout.json
  petamap edit custom.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultLayoutFile
			if len(args) == 1 {
				path = args[0]
			}
			return c.runEdit(path)
		},
	}
}

// runEdit loads (or defaults) the layout at path and runs the editor program.
func (c *CLI) runEdit(path string) error {
	var model *layout.Model
	if _, err := os.Stat(path); err == nil {
		model, err = layout.Load(path)
		if err != nil {
			printError("%s", errors.UserMessage(err))
			return err
		}
		printInfo("Editing %s", path)
	} else {
		model = layout.Default()
		printInfo("Editing new layout %s (from defaults)", path)
	}

	p := tea.NewProgram(NewEditorModel(path, model))
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	fm, ok := finalModel.(EditorModel)
	if !ok {
		return nil
	}
	if fm.Saved {
		printSuccess("Saved layout")
		printFile(path)
		printNextStep("Render with it", appName+" render kebun.shp --layout "+path)
	} else if fm.Dirty {
		printWarning("Discarded unsaved changes")
	} else {
		printDetail("No changes made")
	}
	return nil
}
