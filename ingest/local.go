// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ingest

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/poiesic/inquest/core"
	"github.com/poiesic/inquest/pipeline"
	"github.com/poiesic/inquest/storage"
)

// sourcePatterns maps source archives to path keywords, checked in order.
var sourcePatterns = []struct {
	source   string
	keywords []string
}{
	{"doj", []string{"doj", "dataset", "justice.gov", "efta"}},
	{"court", []string{"court", "filing", "deposition", "indictment"}},
	{"oversight", []string{"oversight", "house", "committee"}},
	{"estate", []string{"estate"}},
	{"fbi", []string{"fbi", "vault"}},
}

// supportedExtensions maps accepted file extensions to document types.
var supportedExtensions = map[string]string{
	".pdf":  "pdf",
	".jpg":  "image",
	".jpeg": "image",
	".png":  "image",
	".tiff": "image",
	".txt":  "text",
}

// Importer registers documents from a local directory and enqueues
// their processing jobs.
type Importer struct {
	documents storage.DocumentRepository
	jobs      storage.JobRepository
	source    string // overrides path-based detection when set
	recursive bool
	logger    *slog.Logger
}

// Option configures an Importer.
type Option func(*Importer) error

// WithSource forces every imported document's source archive instead of
// detecting it from the file path.
func WithSource(source string) Option {
	return func(im *Importer) error {
		im.source = source
		return nil
	}
}

// WithRecursive controls whether subdirectories are walked.
// Default is true.
func WithRecursive(recursive bool) Option {
	return func(im *Importer) error {
		im.recursive = recursive
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(im *Importer) error {
		if logger == nil {
			logger = slog.Default()
		}
		im.logger = logger
		return nil
	}
}

// NewImporter creates a new local directory importer.
func NewImporter(documents storage.DocumentRepository, jobs storage.JobRepository, opts ...Option) (*Importer, error) {
	if documents == nil {
		return nil, ErrDocumentRepositoryRequired
	}
	if jobs == nil {
		return nil, ErrJobRepositoryRequired
	}

	im := &Importer{
		documents: documents,
		jobs:      jobs,
		recursive: true,
		logger:    slog.Default().With("component", "importer"),
	}
	for _, opt := range opts {
		if err := opt(im); err != nil {
			return nil, err
		}
	}
	return im, nil
}

// ImportDirectory imports every supported file under dir, creating a
// pending Document and its processing jobs per file. Returns the number
// of documents imported.
func (im *Importer) ImportDirectory(ctx context.Context, dir string) (int, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return 0, err
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	imported := 0
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if !im.recursive && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		docType, ok := supportedExtensions[strings.ToLower(filepath.Ext(path))]
		if !ok {
			return nil
		}

		if err := im.importFile(ctx, path, docType); err != nil {
			return fmt.Errorf("import %s: %w", path, err)
		}

		imported++
		if imported%100 == 0 {
			im.logger.Info("import progress", "imported", imported)
		}
		return nil
	})
	if err != nil {
		return imported, err
	}

	im.logger.Info("import complete", "imported", imported, "dir", dir)
	return imported, nil
}

// importFile creates the document row and its stage jobs.
func (im *Importer) importFile(ctx context.Context, path, docType string) error {
	source := im.source
	if source == "" {
		source = DetectSource(path)
	}

	docs, err := im.documents.AddDocuments(ctx, &core.Document{
		Source:     source,
		SourcePath: path,
		Filename:   filepath.Base(path),
		DocType:    docType,
		Status:     core.DocumentPending,
	})
	if err != nil {
		return err
	}
	doc := docs[0]

	jobs := []*core.ProcessingJob{{
		DocumentId: doc.Id,
		Kind:       core.JobExtractText,
		Priority:   pipeline.PriorityExtract,
	}}
	if docType == "pdf" {
		jobs = append(jobs, &core.ProcessingJob{
			DocumentId: doc.Id,
			Kind:       core.JobDetectRedaction,
			Priority:   pipeline.PriorityRedaction,
		})
	}

	_, err = im.jobs.AddJobs(ctx, jobs...)
	return err
}

// DetectSource guesses a document's source archive from its path.
func DetectSource(path string) string {
	lower := strings.ToLower(path)
	for _, p := range sourcePatterns {
		for _, kw := range p.keywords {
			if strings.Contains(lower, kw) {
				return p.source
			}
		}
	}
	return "unknown"
}
