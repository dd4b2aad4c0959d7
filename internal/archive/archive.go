// Package archive packages folder trees into single compressed
// artifacts for download or transfer.
package archive

import (
	"archive/tar"
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charlievieth/fastwalk"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"

	"github.com/folderguard/folderguard/internal/logging"
)

// Compression selects the tar compression codec.
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionGzip Compression = "gzip"
	CompressionZstd Compression = "zstd"
)

// Archiver writes folder archives adjacent to the source folder.
type Archiver struct {
	logger *logging.Logger
}

// New creates an archiver.
func New(logger *logging.Logger) *Archiver {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Archiver{logger: logger}
}

// Zip writes <parent>/<base>.zip containing folder's full recursive
// contents and returns the archive path. Unlike the bulk walks, archive
// failures are hard failures surfaced to the caller; the partial output
// file is removed on error.
func (a *Archiver) Zip(ctx context.Context, folder string) (string, error) {
	info, err := os.Stat(folder)
	if err != nil {
		return "", fmt.Errorf("folder not accessible: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", folder)
	}

	out := filepath.Join(filepath.Dir(folder), filepath.Base(folder)+".zip")
	zipFile, err := os.Create(out)
	if err != nil {
		return "", fmt.Errorf("failed to create archive: %w", err)
	}

	zipWriter := zip.NewWriter(zipFile)

	fileCount := 0
	conf := fastwalk.Config{Follow: false, NumWorkers: 1}

	err = fastwalk.Walk(&conf, folder, func(path string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil || path == folder {
			return err
		}

		relPath, err := filepath.Rel(folder, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			_, err := zipWriter.Create(relPath + "/")
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}

		writer, err := zipWriter.Create(relPath)
		if err != nil {
			return err
		}

		file, err := os.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()

		if _, err := io.Copy(writer, file); err != nil {
			return err
		}
		fileCount++
		return nil
	})
	if err == nil {
		err = zipWriter.Close()
	} else {
		zipWriter.Close()
	}
	if cerr := zipFile.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(out)
		return "", fmt.Errorf("archive creation failed: %w", err)
	}

	a.logger.Info("archive created",
		zap.String("folder", folder),
		zap.String("archive", out),
		zap.Int("files", fileCount),
	)
	return out, nil
}

// Tar writes <parent>/<base>.tar[.gz|.zst] and returns the archive path.
func (a *Archiver) Tar(ctx context.Context, folder string, compression Compression) (string, error) {
	info, err := os.Stat(folder)
	if err != nil {
		return "", fmt.Errorf("folder not accessible: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", folder)
	}

	base := filepath.Join(filepath.Dir(folder), filepath.Base(folder))
	var out string
	switch compression {
	case CompressionGzip:
		out = base + ".tar.gz"
	case CompressionZstd:
		out = base + ".tar.zst"
	case CompressionNone, "":
		out = base + ".tar"
	default:
		return "", fmt.Errorf("unsupported compression: %s", compression)
	}

	outFile, err := os.Create(out)
	if err != nil {
		return "", fmt.Errorf("failed to create archive: %w", err)
	}

	var (
		tarWriter *tar.Writer
		closers   []io.Closer
	)
	switch compression {
	case CompressionGzip:
		gzWriter := gzip.NewWriter(outFile)
		closers = append(closers, gzWriter)
		tarWriter = tar.NewWriter(gzWriter)
	case CompressionZstd:
		zstdWriter, zerr := zstd.NewWriter(outFile)
		if zerr != nil {
			outFile.Close()
			os.Remove(out)
			return "", fmt.Errorf("failed to initialize zstd: %w", zerr)
		}
		closers = append(closers, zstdWriter)
		tarWriter = tar.NewWriter(zstdWriter)
	default:
		tarWriter = tar.NewWriter(outFile)
	}

	conf := fastwalk.Config{Follow: false, NumWorkers: 1}
	err = fastwalk.Walk(&conf, folder, func(path string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil || path == folder {
			return err
		}
		if !d.IsDir() && !d.Type().IsRegular() {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(folder, path)
		if err != nil {
			return err
		}

		header, err := tar.FileInfoHeader(fi, "")
		if err != nil {
			return err
		}
		header.Name = filepath.ToSlash(relPath)

		if err := tarWriter.WriteHeader(header); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		file, err := os.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()

		_, err = io.Copy(tarWriter, file)
		return err
	})

	if cerr := tarWriter.Close(); err == nil {
		err = cerr
	}
	for i := len(closers) - 1; i >= 0; i-- {
		if cerr := closers[i].Close(); err == nil {
			err = cerr
		}
	}
	if cerr := outFile.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(out)
		return "", fmt.Errorf("archive creation failed: %w", err)
	}

	a.logger.Info("archive created",
		zap.String("folder", folder),
		zap.String("archive", out),
		zap.String("compression", string(compression)),
	)
	return out, nil
}
