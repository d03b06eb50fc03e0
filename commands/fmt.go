package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/outofforest/envspec"
	"github.com/outofforest/envspec/config"
	"github.com/outofforest/ioc/v2"
)

// NewFmtCommand creates new fmt command
func NewFmtCommand(cmdF *CmdFactory) *cobra.Command {
	var loggingF *config.LoggingFactory
	var validationF *config.ValidationFactory

	cmd := &cobra.Command{
		Short: "Prints descriptor in canonical form",
		Args:  cobra.ExactArgs(1),
		Use:   "fmt [flags] specfile|preset",
		RunE: cmdF.Cmd(func(c *ioc.Container) {
			c.Singleton(loggingF.Config)
			c.Singleton(validationF.Config)
		}, func(c *ioc.Container) error {
			var text string
			var err error
			c.Call(envspec.Format, &text, &err)
			if err != nil {
				return err
			}
			fmt.Print(text)
			return nil
		}),
	}
	loggingF = cmdF.AddLoggingFlags(cmd)
	validationF = cmdF.AddValidationFlags(cmd)
	return cmd
}
