package phenopacket

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/seqops/liribatch/internal/storage"
	"github.com/seqops/liribatch/pkg/liribatch"
)

// Record is one parsed phenopacket. Records are immutable: they are parsed
// once, consumed by the resolution engine, and never held beyond matching.
type Record struct {
	// SampleID is the stable sample identifier from subject.id.
	SampleID string

	// VCFName is the VCF file name referenced by the first htsFiles entry,
	// with any file:/// prefix stripped.
	VCFName string

	// Path is the storage path the record was loaded from.
	Path string
}

// document is the recognized subset of the phenopacket schema. htsFiles is
// kept raw so a wrong-typed value reports a validation error instead of a
// bare unmarshal failure.
type document struct {
	Subject *struct {
		ID string `json:"id"`
	} `json:"subject"`
	HTSFiles json.RawMessage `json:"htsFiles"`
}

type htsFile struct {
	URI string `json:"uri"`
}

// Parse validates a phenopacket JSON document loaded from path and extracts
// its Record. Errors wrap liribatch.ErrMissingSampleID or
// liribatch.ErrMissingFileReference.
func Parse(data []byte, path string) (Record, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Record{}, &RecordError{
			Path:    path,
			Message: "not valid JSON: " + err.Error(),
			Hint:    schemaHint,
		}
	}

	if doc.Subject == nil || doc.Subject.ID == "" {
		return Record{}, &RecordError{
			Path:    path,
			Field:   "subject.id",
			Message: "missing a 'subject' section with a sample id",
			Hint:    schemaHint,
			Err:     liribatch.ErrMissingSampleID,
		}
	}

	uri, err := firstHTSFileURI(doc.HTSFiles, path)
	if err != nil {
		return Record{}, err
	}

	return Record{
		SampleID: doc.Subject.ID,
		VCFName:  strings.TrimPrefix(uri, liribatch.FileURIPrefix),
		Path:     path,
	}, nil
}

// firstHTSFileURI extracts the uri of the first htsFiles entry. The list
// being absent, not a list, empty, or its first element lacking a uri are
// all the same validation failure.
func firstHTSFileURI(raw json.RawMessage, path string) (string, error) {
	fail := func(msg string) error {
		return &RecordError{
			Path:    path,
			Field:   "htsFiles",
			Message: msg,
			Hint:    schemaHint,
			Err:     liribatch.ErrMissingFileReference,
		}
	}

	if len(raw) == 0 {
		return "", fail("missing an 'htsFiles' section with a VCF uri")
	}

	var files []htsFile
	if err := json.Unmarshal(raw, &files); err != nil {
		return "", fail("'htsFiles' is not a list")
	}
	if len(files) == 0 {
		return "", fail("'htsFiles' is empty")
	}
	if files[0].URI == "" {
		return "", fail("first 'htsFiles' entry has no uri")
	}
	return files[0].URI, nil
}

// Loader reads phenopackets through a storage bucket.
type Loader struct {
	bucket storage.Bucket
	logger liribatch.Logger
}

// NewLoader creates a phenopacket loader over the given bucket.
func NewLoader(bucket storage.Bucket, logger liribatch.Logger) *Loader {
	return &Loader{bucket: bucket, logger: logger}
}

// Load reads and parses the phenopacket at path. Any failure is fatal to
// the batch; the caller does not skip malformed records.
func (l *Loader) Load(ctx context.Context, path string) (Record, error) {
	l.logger.Info("Parsing %s", path)

	content, err := l.bucket.Read(ctx, path)
	if err != nil {
		return Record{}, err
	}
	return Parse([]byte(content), path)
}
