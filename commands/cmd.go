package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/outofforest/envspec/config"
	"github.com/outofforest/envspec/infra/format"
	"github.com/outofforest/ioc/v2"
)

// NewCmdFactory returns new CmdFactory.
func NewCmdFactory(c *ioc.Container) *CmdFactory {
	return &CmdFactory{
		c: c,
	}
}

// CmdFactory is a wrapper around cobra RunE.
type CmdFactory struct {
	c *ioc.Container
}

// Cmd returns function compatible with RunE.
func (f *CmdFactory) Cmd(setupFunc interface{}, cmdFunc interface{}) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		f.c.Singleton(func() config.Args {
			return args
		})
		f.c.Singleton(config.NewInput)
		if setupFunc != nil {
			f.c.Call(setupFunc)
		}
		var err error
		f.c.Call(cmdFunc, &err)
		return err
	}
}

// AddLoggingFlags adds logging flags to command.
func (f *CmdFactory) AddLoggingFlags(cmd *cobra.Command) *config.LoggingFactory {
	loggingF := &config.LoggingFactory{}

	cmd.Flags().BoolVarP(&loggingF.VerboseLogging, "verbose", "v", false, "Turns on verbose logging")

	return loggingF
}

// AddValidationFlags adds validation flags to command.
func (f *CmdFactory) AddValidationFlags(cmd *cobra.Command) *config.ValidationFactory {
	validationF := &config.ValidationFactory{}

	cmd.Flags().StringSliceVar(&validationF.BaseUsers, "base-user", []string{},
		"Users existing in base image which might be activated without creating them first")

	return validationF
}

// AddFormatFlags adds formatting flags to command.
func (f *CmdFactory) AddFormatFlags(cmd *cobra.Command, defaultFormatter string) *config.FormatFactory {
	formatF := &config.FormatFactory{}

	cmd.Flags().StringVar(&formatF.Formatter, "format", defaultFormatter,
		"Name of formatter used to format the output: "+strings.Join(f.c.Names((*format.Formatter)(nil)), " | "))

	return formatF
}
