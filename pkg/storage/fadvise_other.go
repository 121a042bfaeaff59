//go:build !linux

package storage

import "os"

func adviseSequential(*os.File) error {
	return nil
}
