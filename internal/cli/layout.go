package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sawitlabs/petamap/pkg/errors"
	"github.com/sawitlabs/petamap/pkg/layout"
)

// defaultLayoutFile is the path used when a layout command gets no argument.
const defaultLayoutFile = "layout.json"

// layoutCommand creates the layout management command.
func (c *CLI) layoutCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Manage layout files",
	}

	cmd.AddCommand(c.layoutInitCommand())
	cmd.AddCommand(c.layoutValidateCommand())
	cmd.AddCommand(c.layoutShowCommand())

	return cmd
}

// layoutInitCommand creates the "layout init" subcommand. It writes the
// shipped default layout to a file so it can be customized.
func (c *CLI) layoutInitCommand() *cobra.Command {
	var force bool
	var output string

	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Write the default layout to a file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultLayoutFile
			if output != "" {
				path = output
			}
			if len(args) == 1 {
				path = args[0]
			}
			if !force {
				if _, err := os.Stat(path); err == nil {
					printError("%s already exists (use --force to overwrite)", path)
					return errors.New(errors.ErrCodeInvalidInput, "refusing to overwrite %s", path)
				}
			}
			if err := layout.Default().Save(path); err != nil {
				return err
			}
			printSuccess("Wrote default layout")
			printFile(path)
			printNextStep("Edit it interactively", appName+" edit "+path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default layout.json)")
	return cmd
}

// layoutValidateCommand creates the "layout validate" subcommand.
func (c *CLI) layoutValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a layout file for structural errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := layout.Load(args[0])
			if err != nil {
				printError("%s", errors.UserMessage(err))
				return err
			}
			printSuccess("%s is valid (%d elements)", args[0], model.Len())
			return nil
		},
	}
}

// layoutShowCommand creates the "layout show" subcommand. It prints the
// elements of a layout file (or the shipped defaults) in a readable table.
func (c *CLI) layoutShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [file]",
		Short: "Print the elements of a layout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var model *layout.Model
			if len(args) == 1 {
				m, err := layout.Load(args[0])
				if err != nil {
					printError("%s", errors.UserMessage(err))
					return err
				}
				model = m
				printInfo("Layout: %s", args[0])
			} else {
				model = layout.Default()
				printInfo("Layout: shipped defaults")
			}

			for _, el := range model.Elements() {
				flags := ""
				if el.Protected {
					flags += " " + StyleDim.Render("protected")
				}
				if !el.Visible {
					flags += " " + StyleWarning.Render("hidden")
				}
				fmt.Println("  " + StyleHighlight.Render(fmt.Sprintf("%-14s", el.Name)) +
					StyleDim.Render(fmt.Sprintf("%-10s", string(el.Kind))) +
					StyleValue.Render(fmt.Sprintf("[%.2f %.2f %.2f %.2f]",
						el.Position.Left, el.Position.Bottom, el.Position.Width, el.Position.Height)) +
					flags)
			}
			printDetail("%d elements", model.Len())
			return nil
		},
	}
}
