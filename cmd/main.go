package cmd

import (
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
	"github.com/vxst/dedup/internal"
)

var logger = internal.GetLogger("dedup_cmd")

const usageText = `dedup -e <input> <output>     encode input into a deduplicated container
   dedup -d <input> <output>     decode a container back into the original file
   dedup [global options] command [arguments...]

   Inputs and outputs are local paths or s3://bucket/key objects.`

func Main(args []string) error {
	return NewApp().Run(args)
}

// NewApp builds the command line application.
func NewApp() *cli.App {
	cli.VersionFlag = &cli.BoolFlag{
		Name: "version", Aliases: []string{"V"},
		Usage: "print version only",
	}
	return &cli.App{
		Name:            "dedup",
		Usage:           "Block-level deduplicating codec",
		UsageText:       usageText,
		Version:         internal.Version(),
		Copyright:       "Apache License 2.0",
		HideHelpCommand: true,
		Flags:           expandFlags(modeFlags(), codecFlags(), logFlags(), s3Flags()),
		Before:          setup,
		Action:          codec,
		Commands: []*cli.Command{
			cmdInspect(),
			cmdVerify(),
			cmdCalcFP(),
		},
	}
}

// setup applies the logging flags and tags this run with a session id.
func setup(c *cli.Context) error {
	if err := loadConfig(c).ApplyLogging(); err != nil {
		return err
	}
	internal.SetLogID(uuid.NewString())
	return nil
}

func expandFlags(compoundFlags ...[]cli.Flag) []cli.Flag {
	var flags []cli.Flag
	for _, flags1 := range compoundFlags {
		flags = append(flags, flags1...)
	}
	return flags
}
