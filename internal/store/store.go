package store

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"auction-ledger/internal/auctionerrors"

	"github.com/gofrs/flock"
)

// utf8BOM is written at the start of every dataset so spreadsheet tools
// open the files with the right encoding.
const utf8BOM = "\xef\xbb\xbf"

// lockRetryDelay is the poll interval while waiting for the file lock.
const lockRetryDelay = 10 * time.Millisecond

// fileStore owns one delimited dataset file and serializes read-modify-write
// access to it with an exclusive advisory lock. The lock lives on a sidecar
// file because commits replace the dataset file by rename.
type fileStore struct {
	path        string
	lockPath    string
	header      []string
	lockTimeout time.Duration
}

// ReleaseToken releases the store lock exactly once, on every exit path.
type ReleaseToken struct {
	fl   *flock.Flock
	once sync.Once
}

// Release unlocks the backing file. Safe to call more than once.
func (t *ReleaseToken) Release() {
	t.once.Do(func() {
		_ = t.fl.Unlock()
	})
}

func newFileStore(path string, header []string, lockTimeout time.Duration) (*fileStore, error) {
	s := &fileStore{
		path:        path,
		lockPath:    path + ".lock",
		header:      header,
		lockTimeout: lockTimeout,
	}
	if err := s.ensureFile(); err != nil {
		return nil, err
	}
	return s, nil
}

// ensureFile creates the dataset with its canonical header if it is absent.
func (s *fileStore) ensureFile() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return auctionerrors.NewSystem("stat dataset "+s.path, err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return auctionerrors.NewSystem("create data directory", err)
	}
	return s.writeFile(nil)
}

// acquire takes the exclusive lock, bounded by the configured timeout, and
// returns the freshly parsed rows together with a release token. The caller
// must call Release on the token on every exit path.
func (s *fileStore) acquire(ctx context.Context) ([][]string, *ReleaseToken, error) {
	if s.lockTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.lockTimeout)
		defer cancel()
	}

	fl := flock.New(s.lockPath)
	locked, err := fl.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, nil, fmt.Errorf("%s: %w", s.path, auctionerrors.ErrLockTimeout)
		}
		return nil, nil, auctionerrors.NewSystem("lock "+s.lockPath, err)
	}
	if !locked {
		return nil, nil, fmt.Errorf("%s: %w", s.path, auctionerrors.ErrLockTimeout)
	}
	tok := &ReleaseToken{fl: fl}

	rows, err := s.readRows()
	if err != nil {
		tok.Release()
		return nil, nil, err
	}
	return rows, tok, nil
}

// commit atomically replaces the dataset contents and releases the lock.
// The lock is released even when the write fails.
func (s *fileStore) commit(tok *ReleaseToken, rows [][]string) error {
	defer tok.Release()
	return s.writeFile(rows)
}

// read returns the current rows without taking the lock. Used by list and
// detail views, which tolerate a slightly stale snapshot.
func (s *fileStore) read() ([][]string, error) {
	return s.readRows()
}

func (s *fileStore) readRows() ([][]string, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, auctionerrors.NewSystem("read dataset "+s.path, err)
	}
	content := strings.TrimPrefix(string(raw), utf8BOM)

	r := csv.NewReader(strings.NewReader(content))
	r.FieldsPerRecord = -1
	all, err := r.ReadAll()
	if err != nil {
		return nil, auctionerrors.NewSystem("parse dataset "+s.path, err)
	}
	if len(all) == 0 {
		return nil, nil
	}
	// Drop the header row; decoding is positional against s.header.
	return all[1:], nil
}

// writeFile rewrites the full dataset through a temp file and rename so a
// reader never observes a half-written file.
func (s *fileStore) writeFile(rows [][]string) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return auctionerrors.NewSystem("create temp dataset", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(utf8BOM); err != nil {
		tmp.Close()
		return auctionerrors.NewSystem("write dataset "+s.path, err)
	}
	w := csv.NewWriter(tmp)
	if err := w.Write(s.header); err != nil {
		tmp.Close()
		return auctionerrors.NewSystem("write dataset header "+s.path, err)
	}
	if err := w.WriteAll(rows); err != nil {
		tmp.Close()
		return auctionerrors.NewSystem("write dataset rows "+s.path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return auctionerrors.NewSystem("flush dataset "+s.path, err)
	}
	if err := tmp.Close(); err != nil {
		return auctionerrors.NewSystem("close dataset "+s.path, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return auctionerrors.NewSystem("replace dataset "+s.path, err)
	}
	return nil
}
