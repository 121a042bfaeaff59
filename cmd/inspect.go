package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"github.com/vxst/dedup/internal"
	"github.com/vxst/dedup/pkg/dedup"
	"github.com/vxst/dedup/pkg/storage"
)

func cmdInspect() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "Show the header and body layout of a container",
		ArgsUsage: "CONTAINER",
		Action:    inspect,
	}
}

func inspect(c *cli.Context) error {
	if c.NArg() != 1 {
		_ = cli.ShowCommandHelp(c, "inspect")
		return internal.ErrUsage
	}
	input := c.Args().First()

	dec, err := dedup.NewDecoder(codecConfig(c))
	if err != nil {
		return err
	}
	src, err := storage.Open(c.Context, input, storageOptions(c))
	if err != nil {
		return err
	}
	defer src.Close()

	stats, err := dec.Inspect(src)
	if err != nil {
		return fmt.Errorf("failed to inspect %s: %w", input, err)
	}

	w := c.App.Writer
	fmt.Fprintf(w, "container:          %s\n", input)
	fmt.Fprintf(w, "session key:        %s\n", stats.Key)
	fmt.Fprintf(w, "header:             %s\n", internal.FormatBytes(uint64(stats.HeaderBytes)))
	fmt.Fprintf(w, "dictionary entries: %d (%d referenced)\n", stats.DictEntries, stats.ReferencedEntries)
	fmt.Fprintf(w, "references:         %d\n", stats.References)
	fmt.Fprintf(w, "raw blocks:         %d\n", stats.RawBlocks)
	fmt.Fprintf(w, "tail:               %d bytes\n", stats.TailBytes)
	fmt.Fprintf(w, "container size:     %s\n", internal.FormatBytes(uint64(stats.BytesIn)))
	fmt.Fprintf(w, "original size:      %s\n", internal.FormatBytes(uint64(stats.BytesOut)))
	if stats.BytesOut > 0 {
		fmt.Fprintf(w, "ratio:              %.2f%%\n", 100*float64(stats.BytesIn)/float64(stats.BytesOut))
	}
	return nil
}
