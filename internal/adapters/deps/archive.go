package deps

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/klauspost/compress/zip"
	"github.com/spf13/afero"
	"github.com/ulikunitz/xz"
)

var errMemberNotFound = errors.New("executable not found in archive")

// memberMatches compares the base name of an archive entry. Entries may use
// either slash style depending on the tool that built the archive.
func memberMatches(entry, member string) bool {
	return path.Base(strings.ReplaceAll(entry, `\`, "/")) == member
}

// extractMember unpacks the entry named member from the archive at src to dest
func extractMember(fs afero.Fs, src string, kind ArchiveKind, member, dest string) error {
	f, err := fs.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	switch kind {
	case ArchiveZip:
		err = extractZip(fs, f, info.Size(), member, dest)
	case ArchiveTarXz:
		err = extractTarXz(fs, f, member, dest)
	case Archive7z:
		err = extract7z(fs, f, info.Size(), member, dest)
	default:
		return fmt.Errorf("unsupported archive kind %q", kind)
	}
	if err != nil {
		return fmt.Errorf("failed to extract %s from %s: %w", member, filepath.Base(src), err)
	}
	return nil
}

func extractZip(fs afero.Fs, r io.ReaderAt, size int64, member, dest string) error {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return err
	}
	for _, zf := range zr.File {
		if zf.FileInfo().IsDir() || !memberMatches(zf.Name, member) {
			continue
		}
		rc, err := zf.Open()
		if err != nil {
			return err
		}
		defer rc.Close()
		return writeExecutable(fs, dest, rc)
	}
	return errMemberNotFound
}

func extractTarXz(fs afero.Fs, r io.Reader, member, dest string) error {
	xr, err := xz.NewReader(r)
	if err != nil {
		return err
	}
	tr := tar.NewReader(xr)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return errMemberNotFound
		}
		if err != nil {
			return err
		}
		if hdr.Typeflag != tar.TypeReg || !memberMatches(hdr.Name, member) {
			continue
		}
		return writeExecutable(fs, dest, tr)
	}
}

func extract7z(fs afero.Fs, r io.ReaderAt, size int64, member, dest string) error {
	sr, err := sevenzip.NewReader(r, size)
	if err != nil {
		return err
	}
	for _, sf := range sr.File {
		if sf.FileInfo().IsDir() || !memberMatches(sf.Name, member) {
			continue
		}
		rc, err := sf.Open()
		if err != nil {
			return err
		}
		defer rc.Close()
		return writeExecutable(fs, dest, rc)
	}
	return errMemberNotFound
}

// writeExecutable copies r into dest through a temporary file
func writeExecutable(fs afero.Fs, dest string, r io.Reader) error {
	tmp, err := afero.TempFile(fs, filepath.Dir(dest), "."+filepath.Base(dest)+"-*.tmp")
	if err != nil {
		return err
	}

	success := false
	defer func() {
		tmp.Close()
		if !success {
			fs.Remove(tmp.Name())
		}
	}()

	if _, err := io.Copy(tmp, r); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := makeExecutable(fs, tmp.Name()); err != nil {
		return err
	}
	if err := fs.Rename(tmp.Name(), dest); err != nil {
		return err
	}
	success = true
	return nil
}

func makeExecutable(fs afero.Fs, name string) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return fs.Chmod(name, 0755)
}
