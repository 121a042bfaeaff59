package cmd

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"github.com/vxst/dedup/internal"
	"github.com/vxst/dedup/pkg/dedup"
	"github.com/vxst/dedup/pkg/storage"
)

func cmdVerify() *cli.Command {
	return &cli.Command{
		Name:      "verify",
		Usage:     "Encode and decode a file and check the result matches the input",
		ArgsUsage: "INPUT",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "tmpdir",
				Usage: "directory for the intermediate container",
			},
		},
		Action: verify,
	}
}

func verify(c *cli.Context) error {
	if c.NArg() != 1 {
		_ = cli.ShowCommandHelp(c, "verify")
		return internal.ErrUsage
	}
	input := c.Args().First()
	cfg := codecConfig(c)

	enc, err := dedup.NewEncoder(cfg, nil)
	if err != nil {
		return err
	}
	dec, err := dedup.NewDecoder(cfg)
	if err != nil {
		return err
	}

	src, err := storage.Open(c.Context, input, storageOptions(c))
	if err != nil {
		return err
	}
	defer src.Close()

	want, wantLen, err := internal.StreamDigest(src)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(c.String("tmpdir"), "dedup-verify-*")
	if err != nil {
		return fmt.Errorf("failed to create intermediate container: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	encStats, err := enc.Encode(src, tmp)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", input, err)
	}

	got := internal.NewDigestWriter()
	if _, err := dec.Decode(tmp, got); err != nil {
		return fmt.Errorf("failed to decode intermediate container: %w", err)
	}

	if got.Sum64() != want || got.Len() != wantLen {
		return fmt.Errorf("%w: %s is %d bytes xxhash %016x, round trip gave %d bytes xxhash %016x",
			internal.ErrDigestMismatch, input, wantLen, want, got.Len(), got.Sum64())
	}

	fmt.Fprintf(c.App.Writer, "OK %s: %s -> %s, xxhash %016x\n", input,
		internal.FormatBytes(uint64(wantLen)), internal.FormatBytes(uint64(encStats.BytesOut)), want)
	return nil
}
