package fetcher

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/go-git/go-billy/v5"

	"github.com/tie/modsync/modsync"
)

// TempPrefix is the name prefix of partially downloaded files.
// Such names never parse as managed file names.
const TempPrefix = ".modsync-"

// Downloader streams a remote file.
type Downloader interface {
	Download(ctx context.Context, rawurl string, w io.Writer) error
}

// Fetcher writes remote files into the mods filesystem.
type Fetcher struct {
	Files  billy.Filesystem
	Client Downloader
}

// Fetch downloads rawurl to name, overwriting it if present.
// The data is written to a temporary file first, so on error
// name is left as it was.
func (f *Fetcher) Fetch(ctx context.Context, rawurl, name string) error {
	tmp, err := f.Files.TempFile("", TempPrefix)
	if err != nil {
		return &modsync.FilesystemError{Op: "create", Path: name, Err: err}
	}
	tmpName := tmp.Name()
	err = f.fetchFile(ctx, tmp, rawurl)
	if err == nil {
		err = f.Files.Rename(tmpName, name)
		if err != nil {
			err = &modsync.FilesystemError{Op: "rename", Path: name, Err: err}
		}
	}
	if err != nil {
		rerr := f.Files.Remove(tmpName)
		if rerr != nil && !errors.Is(rerr, os.ErrNotExist) {
			log.WithError(rerr).WithField("file", tmpName).Warn("remove temporary file")
		}
	}
	return err
}

func (f *Fetcher) fetchFile(ctx context.Context, file billy.File, rawurl string) (err error) {
	defer func() {
		cerr := file.Close()
		if err == nil && cerr != nil {
			err = &modsync.FilesystemError{Op: "close", Path: file.Name(), Err: cerr}
		}
	}()
	err = f.Client.Download(ctx, rawurl, file)
	if err != nil && !errors.Is(err, modsync.ErrNetwork) {
		return &modsync.FilesystemError{Op: "write", Path: file.Name(), Err: err}
	}
	return err
}

// Remove deletes a file from the mods filesystem.
func (f *Fetcher) Remove(name string) error {
	if err := f.Files.Remove(name); err != nil {
		return &modsync.FilesystemError{Op: "remove", Path: name, Err: err}
	}
	return nil
}
