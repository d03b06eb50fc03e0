package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/outofforest/envspec"
	"github.com/outofforest/envspec/config"
	"github.com/outofforest/envspec/infra/format"
	"github.com/outofforest/ioc/v2"
)

// NewCheckCommand creates new check command
func NewCheckCommand(cmdF *CmdFactory) *cobra.Command {
	var loggingF *config.LoggingFactory
	var validationF *config.ValidationFactory
	var formatF *config.FormatFactory

	cmd := &cobra.Command{
		Short: "Parses and validates descriptors",
		Args:  cobra.MinimumNArgs(1),
		Use:   "check [flags] ...specfile|preset",
		RunE: cmdF.Cmd(func(c *ioc.Container) {
			c.Singleton(loggingF.Config)
			c.Singleton(validationF.Config)
			c.Singleton(formatF.Config)
		}, func(c *ioc.Container, formatter format.Formatter) error {
			var results []envspec.CheckResult
			var err error
			c.Call(envspec.Check, &results, &err)
			if err != nil {
				return err
			}
			fmt.Println(formatter.Format(results))
			return nil
		}),
	}
	loggingF = cmdF.AddLoggingFlags(cmd)
	validationF = cmdF.AddValidationFlags(cmd)
	formatF = cmdF.AddFormatFlags(cmd, "table")
	return cmd
}
