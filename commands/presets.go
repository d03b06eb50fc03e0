package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/outofforest/envspec"
	"github.com/outofforest/envspec/config"
	"github.com/outofforest/envspec/infra"
	"github.com/outofforest/envspec/infra/format"
	"github.com/outofforest/ioc/v2"
)

// NewPresetsCommand creates new presets command
func NewPresetsCommand(cmdF *CmdFactory) *cobra.Command {
	var loggingF *config.LoggingFactory
	var formatF *config.FormatFactory

	cmd := &cobra.Command{
		Short: "Lists built-in environments",
		Args:  cobra.NoArgs,
		Use:   "presets [flags]",
		RunE: cmdF.Cmd(func(c *ioc.Container) {
			c.Singleton(loggingF.Config)
			c.Singleton(formatF.Config)
		}, func(c *ioc.Container, formatter format.Formatter) error {
			var presets []infra.Preset
			c.Call(envspec.Presets, &presets)
			fmt.Println(formatter.Format(presets))
			return nil
		}),
	}
	loggingF = cmdF.AddLoggingFlags(cmd)
	formatF = cmdF.AddFormatFlags(cmd, "table")
	return cmd
}
