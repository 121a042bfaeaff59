// Copyright 2025 zhengshuai.xiao@outlook.com
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package storage opens the inputs and outputs of the codec. Plain paths
// are local files; s3://bucket/key names an object on an S3-compatible
// endpoint.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/vxst/dedup/internal"
)

var logger = internal.GetLogger("storage")

var ErrInvalidURI = errors.New("invalid storage URI")

const (
	BackendPOSIX = "posix"
	BackendS3    = "s3"
)

// Source is a seekable input.
type Source interface {
	io.ReadSeeker
	io.Closer
	// Size is the total length of the input in bytes.
	Size() int64
}

// Sink is an output. Close must be called and its error checked: for
// remote sinks it waits for the upload to finish. Abort discards whatever
// was written instead.
type Sink interface {
	io.Writer
	Close() error
	Abort() error
}

var errAborted = errors.New("output aborted")

// Options configures the S3 backend.
type Options struct {
	Endpoint string
	Region   string
	Secure   bool
	Creds    *credentials.Credentials
}

// Location is a parsed storage URI.
type Location struct {
	Backend string
	// Path is the local path for BackendPOSIX.
	Path   string
	Bucket string
	Key    string
}

func (l Location) String() string {
	if l.Backend == BackendS3 {
		return "s3://" + l.Bucket + "/" + l.Key
	}
	return l.Path
}

// ParseURI splits uri into a Location.
func ParseURI(uri string) (Location, error) {
	if uri == "" {
		return Location{}, fmt.Errorf("%w: empty", ErrInvalidURI)
	}
	rest, ok := strings.CutPrefix(uri, "s3://")
	if !ok {
		if strings.Contains(uri, "://") {
			return Location{}, fmt.Errorf("%w: unsupported scheme in %q", ErrInvalidURI, uri)
		}
		return Location{Backend: BackendPOSIX, Path: uri}, nil
	}
	bucket, key, _ := strings.Cut(rest, "/")
	if bucket == "" || key == "" || strings.HasSuffix(key, "/") {
		return Location{}, fmt.Errorf("%w: %q must be s3://bucket/key", ErrInvalidURI, uri)
	}
	return Location{Backend: BackendS3, Bucket: bucket, Key: key}, nil
}

// Open opens uri for reading.
func Open(ctx context.Context, uri string, opts Options) (Source, error) {
	loc, err := ParseURI(uri)
	if err != nil {
		return nil, err
	}
	switch loc.Backend {
	case BackendS3:
		client, err := newS3Client(opts)
		if err != nil {
			return nil, err
		}
		src, err := openS3(ctx, client, loc)
		if err != nil {
			return nil, err
		}
		return src, nil
	default:
		src, err := openFile(loc.Path)
		if err != nil {
			return nil, err
		}
		return src, nil
	}
}

// Create opens uri for writing, truncating any existing content.
func Create(ctx context.Context, uri string, opts Options) (Sink, error) {
	loc, err := ParseURI(uri)
	if err != nil {
		return nil, err
	}
	switch loc.Backend {
	case BackendS3:
		client, err := newS3Client(opts)
		if err != nil {
			return nil, err
		}
		return createS3(ctx, client, loc), nil
	default:
		sink, err := createFile(loc.Path)
		if err != nil {
			return nil, err
		}
		return sink, nil
	}
}
