//go:build linux || darwin

package scanner

import (
	"bytes"
	"encoding/binary"
	"unsafe"

	"github.com/jamesainslie/dstat/pkg/dstat/types"
	"golang.org/x/sys/unix"
)

const direntSupported = true

// direntBufSize is the read size for directory records.
const direntBufSize = 32 * 1024

// Field offsets of unix.Dirent. Records are decoded from the raw buffer by
// offset rather than by casting, since the final record of a read is
// usually shorter than the struct.
var (
	direntInoOff    = int(unsafe.Offsetof(unix.Dirent{}.Ino))
	direntReclenOff = int(unsafe.Offsetof(unix.Dirent{}.Reclen))
	direntTypeOff   = int(unsafe.Offsetof(unix.Dirent{}.Type))
	direntNameOff   = int(unsafe.Offsetof(unix.Dirent{}.Name))
)

// DirentClassifier reads raw directory records and classifies entries on
// the kernel-reported d_type. It is the only backend that can see union
// filesystem whiteouts.
type DirentClassifier struct{}

// Scan implements Classifier.
func (c *DirentClassifier) Scan(dir string, tally *types.Tally) error {
	fd, err := openDir(dir)
	if err != nil {
		return &types.ScanError{Path: dir, Err: err}
	}
	defer unix.Close(fd)

	var local types.Tally
	buf := make([]byte, direntBufSize)
	for {
		n, err := readDirent(fd, buf)
		if err != nil {
			return &types.ScanError{Path: dir, Err: err}
		}
		if n <= 0 {
			break
		}
		parseDirents(buf[:n], func(name []byte, dtype uint8) {
			local.Add(FromDirentType(dtype))
		})
	}

	tally.Merge(&local)
	logger.Debug("read directory", "path", dir, "entries", local.Total())
	return nil
}

func openDir(dir string) (int, error) {
	for {
		fd, err := unix.Open(dir, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC, 0)
		if err == unix.EINTR {
			continue
		}
		return fd, err
	}
}

func readDirent(fd int, buf []byte) (int, error) {
	for {
		n, err := unix.ReadDirent(fd, buf)
		if err == unix.EINTR {
			continue
		}
		return n, err
	}
}

// parseDirents calls fn for every live record in buf other than "." and
// "..". Truncated or zero-length records end parsing.
func parseDirents(buf []byte, fn func(name []byte, dtype uint8)) {
	for len(buf) > direntNameOff {
		reclen := int(binary.NativeEndian.Uint16(buf[direntReclenOff:]))
		if reclen <= direntNameOff || reclen > len(buf) {
			return
		}
		rec := buf[:reclen]
		buf = buf[reclen:]

		if binary.NativeEndian.Uint64(rec[direntInoOff:]) == 0 {
			continue
		}

		name := rec[direntNameOff:]
		if i := bytes.IndexByte(name, 0); i >= 0 {
			name = name[:i]
		}
		if isDotEntry(string(name)) {
			continue
		}
		fn(name, rec[direntTypeOff])
	}
}

// FromDirentType maps a d_type value to an entry type. DT_UNKNOWN and any
// unrecognised value count as Unknown.
func FromDirentType(dtype uint8) types.EntryType {
	switch dtype {
	case unix.DT_REG:
		return types.Regular
	case unix.DT_DIR:
		return types.Directory
	case unix.DT_LNK:
		return types.Symlink
	case unix.DT_BLK:
		return types.BlockDevice
	case unix.DT_CHR:
		return types.CharDevice
	case unix.DT_FIFO:
		return types.FIFO
	case unix.DT_SOCK:
		return types.Socket
	case unix.DT_WHT:
		return types.Whiteout
	default:
		return types.Unknown
	}
}
