package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/outofforest/envspec/commands"
	"github.com/outofforest/envspec/infra"
	"github.com/outofforest/envspec/infra/format"
	"github.com/outofforest/envspec/infra/parser"
	"github.com/outofforest/ioc/v2"
	"github.com/outofforest/run"
)

func iocBuilder(c *ioc.Container) {
	c.Singleton(commands.NewCmdFactory)
	c.Singleton(infra.NewPresetRepository)
	c.Singleton(infra.NewLoader)

	c.Singleton(parser.NewResolvingParser)
	c.SingletonNamed("spec", parser.NewSpecFileParser)
	c.SingletonNamed("dockerfile", parser.NewSpecFileParser)

	c.Singleton(format.Resolve)
	c.SingletonNamed("text", format.NewTextFormatter)
	c.SingletonNamed("table", format.NewTableFormatter)
	c.SingletonNamed("json", format.NewJSONFormatter)
	c.SingletonNamed("yaml", format.NewYAMLFormatter)

	c.Singleton(commands.NewRootCommand)
	c.SingletonNamed("check", commands.NewCheckCommand)
	c.SingletonNamed("render", commands.NewRenderCommand)
	c.SingletonNamed("fmt", commands.NewFmtCommand)
	c.SingletonNamed("presets", commands.NewPresetsCommand)
}

func main() {
	run.New().WithContainerBuilder(iocBuilder).Run(context.Background(), "envspec",
		func(ctx context.Context, rootCmd *cobra.Command) error {
			return rootCmd.Execute()
		})
}
