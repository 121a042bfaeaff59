package cmd

import (
	"bufio"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"
	"github.com/vxst/dedup/internal"
	"github.com/vxst/dedup/pkg/dedup"
	"github.com/vxst/dedup/pkg/storage"
)

func cmdCalcFP() *cli.Command {
	return &cli.Command{
		Name:      "calcfp",
		Usage:     "Print block fingerprints of a file and how many blocks repeat",
		ArgsUsage: "INPUT",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "only print the summary"},
		},
		Action: calcFP,
	}
}

func calcFP(c *cli.Context) error {
	if c.NArg() != 1 {
		_ = cli.ShowCommandHelp(c, "calcfp")
		return internal.ErrUsage
	}
	input := c.Args().First()
	cfg := codecConfig(c)
	if err := cfg.Validate(); err != nil {
		return err
	}

	src, err := storage.Open(c.Context, input, storageOptions(c))
	if err != nil {
		return err
	}
	defer src.Close()

	cdc := &dedup.FixedCDC{ChunkSize: cfg.BlockSize}
	chunker, err := cdc.NewChunker(bufio.NewReader(src))
	if err != nil {
		return fmt.Errorf("error creating chunker: %w", err)
	}

	w := bufio.NewWriter(c.App.Writer)
	defer w.Flush()

	// Unpruned, so the counts are exact.
	counter := dedup.NewFreqCounter(0)
	var blocks, total int64
	for {
		chunk, err := chunker.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("error getting next chunk: %w", err)
		}
		total += int64(chunk.Len)
		if chunk.Len < cfg.BlockSize {
			if !c.Bool("quiet") {
				fmt.Fprintf(w, "tail: off=%d len=%d\n", chunk.Off, chunk.Len)
			}
			continue
		}
		blocks++
		fp := counter.Observe(chunk.Data)
		if !c.Bool("quiet") {
			fmt.Fprintf(w, "block %d: off=%d fp=%016x\n", blocks, chunk.Off, fp)
		}
	}

	duplicates := blocks - int64(counter.Len())
	fmt.Fprintf(w, "%s: %s in %d blocks of %d bytes, %d distinct, %d duplicate\n",
		input, internal.FormatBytes(uint64(total)), blocks, cfg.BlockSize, counter.Len(), duplicates)
	return nil
}
