package cmd

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"
)

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// source is one named input.
type source struct {
	name string
	io.ReadCloser
}

// fileKey uniquely identifies a file by its device and inode numbers, so
// one file named through symlinks or different relative paths is read
// once.
type fileKey struct {
	dev uint64
	ino uint64
}

func makeFileKey(info os.FileInfo) (fileKey, bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return fileKey{}, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true
}

// openSources opens each path in order. "-" reads from in. Duplicate paths
// are dropped after their first occurrence. On error every source opened so
// far is closed.
func openSources(paths []string, in io.Reader) (srcs []source, err error) {
	defer func() {
		if err != nil {
			closeSources(srcs)
			srcs = nil
		}
	}()

	seen := make(map[fileKey]struct{}, len(paths))
	stdinSeen := false

	for _, path := range paths {
		if path == stdinSource {
			if !stdinSeen {
				stdinSeen = true
				srcs = append(srcs, source{name: "<stdin>", ReadCloser: io.NopCloser(in)})
			}

			continue
		}

		file, err := openUnique(path, seen)
		if err != nil {
			return srcs, ErrOpenSource.With(slog.String("file", path)).Wrap(err)
		}

		if file != nil {
			srcs = append(srcs, source{name: path, ReadCloser: file})
		}
	}

	return srcs, nil
}

// openUnique opens path unless the file it resolves to is already in seen.
// It returns nil for a duplicate.
func openUnique(path string, seen map[fileKey]struct{}) (*os.File, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()

		return nil, err
	}

	if key, ok := makeFileKey(info); ok {
		if _, dup := seen[key]; dup {
			file.Close()

			return nil, nil //nolint:nilnil
		}

		seen[key] = struct{}{}
	}

	return file, nil
}

func closeSources(srcs []source) {
	for _, src := range srcs {
		src.Close()
	}
}
