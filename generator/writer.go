package generator

import (
	"fmt"

	"github.com/erraggy/oasbind/internal/fileutil"
	"github.com/erraggy/oasbind/oaserrors"
)

// WriteFiles writes the three artifacts to their configured paths. Parent
// directories are created as needed.
//
// Nothing is written when the result has critical issues, and a failure
// while writing leaves every target untouched.
func (r *GenerateResult) WriteFiles() error {
	if r.HasCriticalIssues() {
		return &oaserrors.GenerationError{
			Keys:    r.DuplicateKeys,
			Message: fmt.Sprintf("%d critical issue(s), refusing to write", r.CriticalCount),
		}
	}
	if len(r.Files) == 0 {
		return &oaserrors.GenerationError{Message: "no files to write"}
	}

	files := make([]fileutil.File, 0, len(r.Files))
	for _, f := range r.Files {
		files = append(files, fileutil.File{Path: f.Path, Content: f.Content})
	}
	if err := fileutil.CommitFiles(files); err != nil {
		return fmt.Errorf("generator: failed to write files: %w", err)
	}
	return nil
}
