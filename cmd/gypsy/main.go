/*
Copyright 2011-2026 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Command gypsy is the single-file general-purpose data compressor and
// decompressor described by the archive/coder/model packages. It only
// supplies what the core needs: opened byte streams, the plaintext
// length, and a compression level.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aldenreyes/gypsy"
	"github.com/aldenreyes/gypsy/archive"
	"github.com/aldenreyes/gypsy/model"
)

var (
	decompress bool
	level      int
	verbose    bool
)

func main() {
	root := &cobra.Command{
		Use:           "gypsy [flags] <file> | gypsy -d <input> <output>",
		Short:         "context-mixing arithmetic compressor",
		Args:          cobra.RangeArgs(1, 2),
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.Flags().BoolVarP(&decompress, "decompress", "d", false, "decompress <input> <output>")
	root.Flags().IntVarP(&level, "level", "l", model.DefaultLevel, "compression level [0-9]")
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "print progress")

	if err := root.Execute(); err != nil {
		log.Println(err.Error())
		os.Exit(exitCodeFor(err))
	}
}

func run(cmd *cobra.Command, args []string) error {
	if decompress {
		if len(args) != 2 {
			return newExitError(gypsy.ERR_MISSING_PARAM, fmt.Errorf("usage: gypsy -d <input> <output>"))
		}

		return runDecompress(args[0], args[1])
	}

	if len(args) != 1 {
		return newExitError(gypsy.ERR_MISSING_PARAM, fmt.Errorf("usage: gypsy <file>"))
	}

	return runCompress(args[0])
}

func runCompress(sourcePath string) error {
	if level < 0 || level > 9 {
		level = model.DefaultLevel
	}

	src, err := os.Open(sourcePath)
	if err != nil {
		return newExitError(gypsy.ERR_OPEN_FILE, err)
	}

	defer src.Close()

	fi, err := src.Stat()
	if err != nil {
		return newExitError(gypsy.ERR_OPEN_FILE, err)
	}

	targetPath := filepath.Base(sourcePath) + ".zpaq"

	dst, err := os.Create(targetPath)
	if err != nil {
		return newExitError(gypsy.ERR_CREATE_FILE, err)
	}

	defer dst.Close()

	log.Println(fmt.Sprintf("Creating archive %s...", targetPath))

	l := newProgressPrinter(verbose, fi.Size())

	if err := archive.Compress(dst, src, level, fi.Size(), l); err != nil {
		// A partially-written archive is invalid; the caller (this CLI)
		// is responsible for removing it rather than leaving it behind.
		dst.Close()
		os.Remove(targetPath)
		return newExitError(gypsy.ERR_WRITE_FILE, err)
	}

	info, err := dst.Stat()
	if err == nil {
		log.Println(fmt.Sprintf("%d -> %d", fi.Size(), info.Size()))
	}

	return nil
}

func runDecompress(sourcePath, targetPath string) error {
	if _, err := os.Stat(targetPath); err == nil {
		log.Println("File exists.")
		return newExitError(gypsy.ERR_OVERWRITE_FILE, fmt.Errorf("%s already exists", targetPath))
	}

	src, err := os.Open(sourcePath)
	if err != nil {
		return newExitError(gypsy.ERR_OPEN_FILE, err)
	}

	defer src.Close()

	dst, err := os.Create(targetPath)
	if err != nil {
		return newExitError(gypsy.ERR_CREATE_FILE, err)
	}

	defer dst.Close()

	l := newProgressPrinter(verbose, 0)

	h, err := archive.Decompress(dst, src, l)
	if err != nil {
		dst.Close()
		os.Remove(targetPath)

		if errors.Is(err, archive.ErrFormatMismatch) {
			log.Println(fmt.Sprintf("%s: not a %s file", sourcePath, archive.Name))
			return newExitError(gypsy.ERR_INVALID_FILE, err)
		}

		return newExitError(gypsy.ERR_READ_FILE, err)
	}

	log.Println(fmt.Sprintf("Inflated %s at level %d: %d bytes", sourcePath, h.Level, h.Size))
	return nil
}
