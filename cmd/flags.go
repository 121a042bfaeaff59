package cmd

import (
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/urfave/cli/v2"
	"github.com/vxst/dedup/internal"
	"github.com/vxst/dedup/pkg/dedup"
	"github.com/vxst/dedup/pkg/storage"
)

func modeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "e",
			Usage: "encode <input> into container <output>",
		},
		&cli.BoolFlag{
			Name:  "d",
			Usage: "decode container <input> into <output>",
		},
	}
}

// codecFlags must match between the encode and the decode of a container.
func codecFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "block-size",
			Value:   dedup.DefaultBlockSize,
			EnvVars: []string{"DEDUP_BLOCK_SIZE"},
			Usage:   "deduplication block size in bytes",
		},
		&cli.IntFlag{
			Name:    "dict-size",
			Value:   dedup.DefaultDictSize,
			EnvVars: []string{"DEDUP_DICT_SIZE"},
			Usage:   "maximum number of dictionary blocks",
		},
		&cli.IntFlag{
			Name:    "ratio",
			Value:   dedup.DefaultRatio,
			EnvVars: []string{"DEDUP_RATIO"},
			Usage:   "frequency map size relative to dict-size between prunes",
		},
	}
}

func logFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "log-level",
			Value:   "info",
			EnvVars: []string{"DEDUP_LOG_LEVEL"},
			Usage:   "log level: trace/debug/info/warn/error",
		},
		&cli.StringFlag{
			Name:  "log-file",
			Usage: "write logs to a daily rotated file instead of stderr",
		},
		&cli.BoolFlag{
			Name:  "no-color",
			Usage: "disable colors in log output",
		},
	}
}

func s3Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "s3-endpoint",
			EnvVars: []string{"DEDUP_S3_ENDPOINT"},
			Usage:   "host:port of the S3-compatible endpoint used for s3:// paths",
		},
		&cli.StringFlag{
			Name:    "s3-region",
			EnvVars: []string{"DEDUP_S3_REGION"},
			Usage:   "S3 region",
		},
		&cli.StringFlag{
			Name:    "s3-access-key",
			EnvVars: []string{"DEDUP_S3_ACCESS_KEY"},
			Usage:   "S3 access key; AWS_* / MINIO_* environment variables are used when empty",
		},
		&cli.StringFlag{
			Name:    "s3-secret-key",
			EnvVars: []string{"DEDUP_S3_SECRET_KEY"},
			Usage:   "S3 secret key",
		},
		&cli.BoolFlag{
			Name:    "s3-insecure",
			EnvVars: []string{"DEDUP_S3_INSECURE"},
			Usage:   "talk plain HTTP to the S3 endpoint",
		},
	}
}

func loadConfig(c *cli.Context) *internal.Config {
	cfg := internal.DefaultConfig()
	cfg.LogLevel = c.String("log-level")
	cfg.LogFile = c.String("log-file")
	cfg.NoColor = c.Bool("no-color")
	cfg.S3Endpoint = c.String("s3-endpoint")
	cfg.S3Region = c.String("s3-region")
	cfg.S3Secure = !c.Bool("s3-insecure")
	if ak := c.String("s3-access-key"); ak != "" {
		cfg.Creds = credentials.NewStaticV4(ak, c.String("s3-secret-key"), "")
	}
	return cfg
}

func codecConfig(c *cli.Context) dedup.Config {
	return dedup.Config{
		BlockSize: c.Int("block-size"),
		DictSize:  c.Int("dict-size"),
		Ratio:     c.Int("ratio"),
	}
}

func storageOptions(c *cli.Context) storage.Options {
	cfg := loadConfig(c)
	return storage.Options{
		Endpoint: cfg.S3Endpoint,
		Region:   cfg.S3Region,
		Secure:   cfg.S3Secure,
		Creds:    cfg.Creds,
	}
}
