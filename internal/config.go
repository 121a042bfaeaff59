package internal

import (
	"fmt"

	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
)

// Config carries the process-wide settings that surround the codec.
type Config struct {
	LogLevel string
	LogFile  string
	NoColor  bool

	S3Endpoint string
	S3Region   string
	S3Secure   bool
	Creds      *credentials.Credentials
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		S3Secure: true,
	}
}

// ApplyLogging configures every registered logger from c.
func (c *Config) ApplyLogging() error {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	SetLogLevel(lvl)
	if c.NoColor {
		DisableLogColor()
	}
	if c.LogFile != "" {
		return SetOutFile(c.LogFile)
	}
	return nil
}
