package workers

import (
	"context"
	"fmt"

	"github.com/cons0leweb/cons0leweb-utils/pkg/fileops"
)

// InsertTask adds configured text to one file, optionally backing it up
// first.
type InsertTask struct {
	Path       string
	Text       string
	Position   fileops.InsertPosition
	WithBackup bool
}

func (t *InsertTask) Execute(ctx context.Context) error {
	return fileops.InsertText(t.Path, t.Text, t.Position, t.WithBackup)
}

func (t *InsertTask) Describe() string {
	return fmt.Sprintf("insert text into %s", t.Path)
}

// RestoreTask copies one backup over the file it was taken from.
type RestoreTask struct {
	BackupPath string
}

func (t *RestoreTask) Execute(ctx context.Context) error {
	_, err := fileops.RestoreBackup(t.BackupPath)
	return err
}

func (t *RestoreTask) Describe() string {
	return fmt.Sprintf("restore backup %s", t.BackupPath)
}

// GenerateTask creates one synthetic file.
type GenerateTask struct {
	Dir       string
	Extension string
	Naming    fileops.NamingScheme
	Content   string
}

func (t *GenerateTask) Execute(ctx context.Context) error {
	_, err := fileops.CreateDummyFile(t.Dir, t.Extension, t.Naming, t.Content)
	return err
}

func (t *GenerateTask) Describe() string {
	return fmt.Sprintf("generate .%s file in %s", t.Extension, t.Dir)
}

// ChecksumTask hashes one file and writes the digest into Result. Each task
// owns its Result slot, so a batch of tasks can share one preallocated slice
// without locking. Hash overrides the plain digest, letting callers route
// through a cache.
type ChecksumTask struct {
	Path      string
	Algorithm string
	Hash      func(path string) (string, error)
	Result    *string
}

func (t *ChecksumTask) Execute(ctx context.Context) error {
	hash := t.Hash
	if hash == nil {
		hash = func(path string) (string, error) {
			return fileops.Checksum(path, t.Algorithm)
		}
	}

	sum, err := hash(t.Path)
	if err != nil {
		return err
	}
	*t.Result = sum
	return nil
}

func (t *ChecksumTask) Describe() string {
	return fmt.Sprintf("%s checksum of %s", t.Algorithm, t.Path)
}
