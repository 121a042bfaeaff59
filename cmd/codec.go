package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
	"github.com/vxst/dedup/internal"
	"github.com/vxst/dedup/pkg/dedup"
	"github.com/vxst/dedup/pkg/storage"
)

// codec is the top-level action: exactly one of -e/-d and two paths.
func codec(c *cli.Context) error {
	encode, decode := c.Bool("e"), c.Bool("d")
	if encode == decode || c.NArg() != 2 {
		_ = cli.ShowAppHelp(c)
		return internal.ErrUsage
	}
	input, output := c.Args().Get(0), c.Args().Get(1)
	cfg, opts := codecConfig(c), storageOptions(c)

	if encode {
		stats, err := encodeFile(c.Context, cfg, opts, input, output)
		if err != nil {
			return err
		}
		logger.Infof("encoded %s -> %s: %s -> %s, %d of %d blocks deduplicated, %d dictionary entries",
			input, output,
			internal.FormatBytes(uint64(stats.BytesIn)), internal.FormatBytes(uint64(stats.BytesOut)),
			stats.Deduped, stats.Blocks, stats.DictEntries)
		return nil
	}

	stats, err := decodeFile(c.Context, cfg, opts, input, output)
	if err != nil {
		return err
	}
	logger.Infof("decoded %s -> %s: %s -> %s, %d references expanded",
		input, output,
		internal.FormatBytes(uint64(stats.BytesIn)), internal.FormatBytes(uint64(stats.BytesOut)),
		stats.References)
	return nil
}

func encodeFile(ctx context.Context, cfg dedup.Config, opts storage.Options, input, output string) (dedup.EncodeStats, error) {
	enc, err := dedup.NewEncoder(cfg, nil)
	if err != nil {
		return dedup.EncodeStats{}, err
	}
	src, err := storage.Open(ctx, input, opts)
	if err != nil {
		return dedup.EncodeStats{}, err
	}
	defer src.Close()

	sink, err := storage.Create(ctx, output, opts)
	if err != nil {
		return dedup.EncodeStats{}, err
	}
	stats, err := enc.Encode(src, sink)
	if err != nil {
		sink.Abort()
		return stats, fmt.Errorf("failed to encode %s: %w", input, err)
	}
	return stats, sink.Close()
}

func decodeFile(ctx context.Context, cfg dedup.Config, opts storage.Options, input, output string) (dedup.DecodeStats, error) {
	dec, err := dedup.NewDecoder(cfg)
	if err != nil {
		return dedup.DecodeStats{}, err
	}
	src, err := storage.Open(ctx, input, opts)
	if err != nil {
		return dedup.DecodeStats{}, err
	}
	defer src.Close()

	sink, err := storage.Create(ctx, output, opts)
	if err != nil {
		return dedup.DecodeStats{}, err
	}
	stats, err := dec.Decode(src, sink)
	if err != nil {
		sink.Abort()
		return stats, fmt.Errorf("failed to decode %s: %w", input, err)
	}
	return stats, sink.Close()
}
