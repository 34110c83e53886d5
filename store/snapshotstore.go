package store

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"client-ledger/domain"
	"client-ledger/shared"
)

const (
	DefaultSnapshotDir = "./db"
	SnapshotExt        = "DAT"

	// DDMMYYYY, e.g. 25122024.
	dayStampLayout = "02012006"
)

type SnapshotStore interface {
	Save(records []shared.Balance) (string, error)

	List() ([]SnapshotFile, error)

	Read(name string) (domain.Snapshot, error)
}

// SnapshotFile identifies one write-once snapshot file.
type SnapshotFile struct {
	Name     string    `json:"name"`
	Day      time.Time `json:"day"`
	Sequence int       `json:"sequence"`
}

// FileSnapshotStore writes ledger snapshots as flat text files named
// <DDMMYYYY>_<N>.DAT, one "<id> <balance>" line per account. The per-day
// sequence is recomputed from the directory on every call, so Save holds the
// store's own mutex across the count and the file creation.
type FileSnapshotStore struct {
	sync.Mutex
	dir string
	now func() time.Time
}

func NewFileSnapshotStore(dir string) *FileSnapshotStore {
	if dir == "" {
		dir = DefaultSnapshotDir
	}
	return &FileSnapshotStore{
		dir: dir,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the clock used to stamp file names.
func (s *FileSnapshotStore) WithClock(now func() time.Time) *FileSnapshotStore {
	s.now = now
	return s
}

func (s *FileSnapshotStore) Dir() string {
	return s.dir
}

func (s *FileSnapshotStore) EnsureReady() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("%w: creating snapshot directory: %w", domain.ErrStorageFailure, err)
	}
	return nil
}

func (s *FileSnapshotStore) today() string {
	return s.now().Format(dayStampLayout)
}

// NextSequenceForToday counts today's snapshot files. A missing directory
// counts as zero.
func (s *FileSnapshotStore) NextSequenceForToday() (int, error) {
	return s.nextSequenceFor(s.today())
}

func (s *FileSnapshotStore) nextSequenceFor(stamp string) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: listing snapshot directory: %w", domain.ErrStorageFailure, err)
	}

	prefix := stamp + "_"
	suffix := "." + SnapshotExt
	count := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			continue
		}
		if strings.HasPrefix(name, prefix) && strings.HasSuffix(name, suffix) {
			count++
		}
	}
	return count, nil
}

// Write creates <today>_<sequence+1>.DAT. The content goes to a hidden temp
// file first and is renamed into place only once fully written and synced;
// an existing target is never overwritten.
func (s *FileSnapshotStore) Write(records []shared.Balance, sequence int) (string, error) {
	return s.writeAs(s.today(), records, sequence)
}

func (s *FileSnapshotStore) writeAs(stamp string, records []shared.Balance, sequence int) (path string, err error) {
	name := fmt.Sprintf("%s_%d.%s", stamp, sequence+1, SnapshotExt)
	path = filepath.Join(s.dir, name)

	if _, statErr := os.Stat(path); statErr == nil {
		return "", fmt.Errorf("%w: snapshot %s already exists", domain.ErrStorageFailure, name)
	}

	tmp, err := os.CreateTemp(s.dir, ".snapshot-*.tmp")
	if err != nil {
		return "", fmt.Errorf("%w: creating %s: %w", domain.ErrStorageFailure, name, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	w := bufio.NewWriter(tmp)
	for _, r := range records {
		if _, err = fmt.Fprintf(w, "%s %s\n", r.AccountID, shared.FormatAmount(r.Amount)); err != nil {
			return "", fmt.Errorf("%w: writing %s: %w", domain.ErrStorageFailure, name, err)
		}
	}
	if err = w.Flush(); err != nil {
		return "", fmt.Errorf("%w: writing %s: %w", domain.ErrStorageFailure, name, err)
	}
	if err = tmp.Sync(); err != nil {
		return "", fmt.Errorf("%w: syncing %s: %w", domain.ErrStorageFailure, name, err)
	}
	if err = tmp.Close(); err != nil {
		return "", fmt.Errorf("%w: closing %s: %w", domain.ErrStorageFailure, name, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("%w: publishing %s: %w", domain.ErrStorageFailure, name, err)
	}
	return path, nil
}

// Save is the serialized count-then-create step used by ledger flushes. The
// clock is read once so the count and the file name share one day.
func (s *FileSnapshotStore) Save(records []shared.Balance) (string, error) {
	s.Lock()
	defer s.Unlock()

	if err := s.EnsureReady(); err != nil {
		return "", err
	}
	stamp := s.today()
	sequence, err := s.nextSequenceFor(stamp)
	if err != nil {
		return "", err
	}
	return s.writeAs(stamp, records, sequence)
}

// List returns every snapshot file in the directory ordered by day, then
// sequence. Names that do not follow the snapshot pattern are skipped.
func (s *FileSnapshotStore) List() ([]SnapshotFile, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []SnapshotFile{}, nil
		}
		return nil, fmt.Errorf("%w: listing snapshot directory: %w", domain.ErrStorageFailure, err)
	}

	files := make([]SnapshotFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		file, ok := ParseSnapshotName(entry.Name())
		if !ok {
			continue
		}
		files = append(files, file)
	}

	sort.Slice(files, func(i, j int) bool {
		if !files[i].Day.Equal(files[j].Day) {
			return files[i].Day.Before(files[j].Day)
		}
		return files[i].Sequence < files[j].Sequence
	})
	return files, nil
}

// Read parses a snapshot file back into its records.
func (s *FileSnapshotStore) Read(name string) (domain.Snapshot, error) {
	file, ok := ParseSnapshotName(name)
	if !ok || filepath.Base(name) != name {
		return domain.Snapshot{}, domain.NewDomainError("invalid snapshot name %q", name)
	}

	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: opening %s: %w", domain.ErrStorageFailure, name, err)
	}
	defer f.Close()

	snap := domain.Snapshot{
		Name:     file.Name,
		Day:      file.Day,
		Sequence: file.Sequence,
		Records:  make([]shared.Balance, 0),
	}

	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return domain.Snapshot{}, fmt.Errorf("%w: %s line %d: expected \"<id> <balance>\"", domain.ErrStorageFailure, name, line)
		}
		amount, err := decimal.NewFromString(fields[1])
		if err != nil {
			return domain.Snapshot{}, fmt.Errorf("%w: %s line %d: %w", domain.ErrStorageFailure, name, line, err)
		}
		snap.Records = append(snap.Records, shared.Balance{AccountID: fields[0], Amount: amount})
	}
	if err := scanner.Err(); err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: reading %s: %w", domain.ErrStorageFailure, name, err)
	}
	return snap, nil
}

// ParseSnapshotName splits "25122024_3.DAT" into its day and sequence.
func ParseSnapshotName(name string) (SnapshotFile, bool) {
	base, ok := strings.CutSuffix(name, "."+SnapshotExt)
	if !ok {
		return SnapshotFile{}, false
	}
	stamp, seq, ok := strings.Cut(base, "_")
	if !ok {
		return SnapshotFile{}, false
	}
	day, err := time.Parse(dayStampLayout, stamp)
	if err != nil {
		return SnapshotFile{}, false
	}
	sequence, err := strconv.Atoi(seq)
	if err != nil || sequence < 1 {
		return SnapshotFile{}, false
	}
	return SnapshotFile{Name: name, Day: day, Sequence: sequence}, true
}

var _ SnapshotStore = (*FileSnapshotStore)(nil)
