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
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var ErrNoEndpoint = errors.New("no S3 endpoint configured")

func newS3Client(opts Options) (*miniogo.Client, error) {
	if opts.Endpoint == "" {
		return nil, ErrNoEndpoint
	}
	creds := opts.Creds
	if creds == nil {
		creds = credentials.NewChainCredentials([]credentials.Provider{
			&credentials.EnvAWS{},
			&credentials.EnvMinio{},
		})
	}
	client, err := miniogo.New(opts.Endpoint, &miniogo.Options{
		Creds:  creds,
		Secure: opts.Secure,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client for %s: %w", opts.Endpoint, err)
	}
	return client, nil
}

// s3Source reads an object through the seekable minio object handle.
type s3Source struct {
	*miniogo.Object
	size int64
}

func (s *s3Source) Size() int64 {
	return s.size
}

func openS3(ctx context.Context, client *miniogo.Client, loc Location) (*s3Source, error) {
	obj, err := client.GetObject(ctx, loc.Bucket, loc.Key, miniogo.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", loc, err)
	}
	info, err := obj.Stat()
	if err != nil {
		obj.Close()
		return nil, fmt.Errorf("failed to stat object %s: %w", loc, err)
	}
	logger.Debugf("opened %s, %d bytes", loc, info.Size)
	return &s3Source{Object: obj, size: info.Size}, nil
}

// s3Sink streams writes into a PutObject call running in the background.
type s3Sink struct {
	pw      *io.PipeWriter
	errChan <-chan error
	loc     Location
}

func createS3(ctx context.Context, client *miniogo.Client, loc Location) *s3Sink {
	pr, pw := io.Pipe()
	errChan := make(chan error, 1)

	go func() {
		defer close(errChan)
		opts := miniogo.PutObjectOptions{ContentType: "application/octet-stream"}
		info, err := client.PutObject(ctx, loc.Bucket, loc.Key, pr, -1, opts)
		if err != nil {
			// Unblock the writer side.
			pr.CloseWithError(err)
		} else {
			logger.Debugf("uploaded %s, %d bytes", loc, info.Size)
		}
		errChan <- err
	}()

	return &s3Sink{pw: pw, errChan: errChan, loc: loc}
}

func (s *s3Sink) Write(p []byte) (int, error) {
	return s.pw.Write(p)
}

// Close ends the stream and blocks until the upload has completed.
func (s *s3Sink) Close() error {
	if err := s.pw.Close(); err != nil {
		return err
	}
	if err := <-s.errChan; err != nil {
		return fmt.Errorf("failed to upload %s: %w", s.loc, err)
	}
	return nil
}

// Abort fails the upload so no object is created.
func (s *s3Sink) Abort() error {
	s.pw.CloseWithError(errAborted)
	if err := <-s.errChan; err != nil && !errors.Is(err, errAborted) {
		logger.Debugf("aborted upload of %s: %v", s.loc, err)
	}
	return nil
}
