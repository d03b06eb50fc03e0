package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/outofforest/envspec"
	"github.com/outofforest/envspec/config"
	"github.com/outofforest/envspec/infra/format"
	"github.com/outofforest/envspec/infra/render"
	"github.com/outofforest/ioc/v2"
)

// NewRenderCommand creates new render command
func NewRenderCommand(cmdF *CmdFactory) *cobra.Command {
	var loggingF *config.LoggingFactory
	var validationF *config.ValidationFactory
	var formatF *config.FormatFactory
	renderF := &config.RenderFactory{}

	cmd := &cobra.Command{
		Short: "Renders descriptor into build instructions",
		Args:  cobra.ExactArgs(1),
		Use:   "render [flags] specfile|preset",
		RunE: cmdF.Cmd(func(c *ioc.Container) {
			c.Singleton(loggingF.Config)
			c.Singleton(validationF.Config)
			c.Singleton(formatF.Config)
			c.Singleton(renderF.Config)
		}, func(c *ioc.Container, formatter format.Formatter) error {
			var instructions []render.Instruction
			var err error
			c.Call(envspec.Render, &instructions, &err)
			if err != nil {
				return err
			}
			fmt.Println(formatter.Format(instructions))
			return nil
		}),
	}
	loggingF = cmdF.AddLoggingFlags(cmd)
	validationF = cmdF.AddValidationFlags(cmd)
	formatF = cmdF.AddFormatFlags(cmd, "text")
	cmd.Flags().BoolVar(&renderF.NoCleanup, "no-cleanup", false, "If set, package index is not removed after packages are installed")
	return cmd
}
