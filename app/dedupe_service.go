package app

import (
	"archive/zip"
	"bytes"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/montanaflynn/stats"

	"visitdedupe/adapters/spreadsheet"
	"visitdedupe/domain/core"
	"visitdedupe/domain/dedupe"
	"visitdedupe/internal/errors"
	"visitdedupe/internal/jobstore"
)

// Output naming follows the original tool: <base>__dedup.<ext>,
// <base>_dupl_remove.<ext>, <base>_dedupe_bundle.zip.
const (
	dedupSuffix   = "__dedup"
	removedSuffix = "_dupl_remove"
	bundleSuffix  = "_dedupe_bundle"
)

// DedupeService runs the full upload-to-artifacts pipeline for one request.
// It holds no per-request state; every Run call is independent.
type DedupeService struct {
	policy dedupe.DatePolicy
}

// NewDedupeService creates a service using the given date policy
func NewDedupeService(policy dedupe.DatePolicy) *DedupeService {
	if policy == "" {
		policy = dedupe.DatePolicyLenient
	}
	return &DedupeService{policy: policy}
}

// RunRequest is one uploaded file
type RunRequest struct {
	Filename string
	Data     []byte
}

// Run loads the upload, deduplicates it and serializes the three output
// artifacts. Any failure surfaces before a job exists, so no partial output
// is ever downloadable.
func (s *DedupeService) Run(req RunRequest) (*jobstore.Job, error) {
	start := time.Now()

	format, err := spreadsheet.DetectFormat(req.Filename)
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, err)
	}

	t, err := spreadsheet.NewReader(format).ReadTableBytes(req.Data)
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, errors.Wrapf(err, "failed to read %q", req.Filename))
	}

	opts := dedupe.DefaultOptions()
	opts.Policy = s.policy
	result, err := dedupe.Deduplicate(t, opts)
	if err != nil {
		return nil, wrapDedupeError(err)
	}

	artifacts, files, err := buildArtifacts(req.Filename, format, result)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build output files")
	}

	fingerprint := core.NewSourceFingerprint(req.Data)
	job := &jobstore.Job{
		ID:        core.NewJobID(),
		CreatedAt: time.Now(),
		Summary: jobstore.Summary{
			SourceFilename: req.Filename,
			Fingerprint:    fingerprint.Short(),
			DatePolicy:     string(s.policy),
			RowsBefore:     result.RowsBefore,
			RowsAfter:      result.RowsAfter,
			RemovedCount:   result.RemovedCount,
			DuplicateStats: duplicateGroupStats(result.Occurrences),
			Files:          files,
		},
		Artifacts: artifacts,
	}

	log.Printf("[DedupeService] %s (%s): %d rows -> %d kept, %d removed in %.2fms",
		req.Filename, fingerprint.Short(), result.RowsBefore, result.RowsAfter,
		result.RemovedCount, float64(time.Since(start).Nanoseconds())/1e6)
	return job, nil
}

func wrapDedupeError(err error) error {
	switch err.(type) {
	case *dedupe.SchemaError:
		return errors.WithCode(errors.CodeSchemaError, err)
	case *dedupe.ValueError:
		return errors.WithCode(errors.CodeValueError, err)
	default:
		return errors.Wrap(err, "dedupe failed")
	}
}

// buildArtifacts serializes kept/removed tables in the upload's format and
// zips them into a bundle
func buildArtifacts(filename string, format spreadsheet.Format, result dedupe.Result) (map[jobstore.ArtifactKind]jobstore.Artifact, map[jobstore.ArtifactKind]string, error) {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	ext := format.OutputExt()

	dedupName := base + dedupSuffix + ext
	removedName := base + removedSuffix + ext
	bundleName := base + bundleSuffix + ".zip"

	var dedupData, removedData []byte
	var err error
	switch format {
	case spreadsheet.FormatCSV:
		if dedupData, err = spreadsheet.WriteCSV(result.Kept); err != nil {
			return nil, nil, err
		}
		if removedData, err = spreadsheet.WriteCSV(result.Removed); err != nil {
			return nil, nil, err
		}
	default:
		// The main workbook carries the removed rows on a second sheet so
		// reviewers can audit without opening the second file.
		dedupData, err = spreadsheet.WriteXLSX([]spreadsheet.Sheet{
			{Name: "Deduped", Table: result.Kept},
			{Name: "Duplicates_Only", Table: result.Removed},
		})
		if err != nil {
			return nil, nil, err
		}
		removedData, err = spreadsheet.WriteXLSX([]spreadsheet.Sheet{
			{Name: "Removed", Table: result.Removed},
		})
		if err != nil {
			return nil, nil, err
		}
	}

	bundleData, err := writeBundle(map[string][]byte{
		dedupName:   dedupData,
		removedName: removedData,
	})
	if err != nil {
		return nil, nil, err
	}

	artifacts := map[jobstore.ArtifactKind]jobstore.Artifact{
		jobstore.ArtifactDeduped: {Filename: dedupName, ContentType: format.ContentType(), Data: dedupData},
		jobstore.ArtifactRemoved: {Filename: removedName, ContentType: format.ContentType(), Data: removedData},
		jobstore.ArtifactBundle:  {Filename: bundleName, ContentType: "application/zip", Data: bundleData},
	}
	files := map[jobstore.ArtifactKind]string{
		jobstore.ArtifactDeduped: dedupName,
		jobstore.ArtifactRemoved: removedName,
		jobstore.ArtifactBundle:  bundleName,
	}
	return artifacts, files, nil
}

// writeBundle zips the named files into one archive, deterministic by name
func writeBundle(files map[string][]byte) ([]byte, error) {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	// Two entries at most; a simple swap keeps archive order stable
	if len(names) == 2 && names[0] > names[1] {
		names[0], names[1] = names[1], names[0]
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			return nil, fmt.Errorf("failed to create zip entry %q: %w", name, err)
		}
		if _, err := w.Write(files[name]); err != nil {
			return nil, fmt.Errorf("failed to write zip entry %q: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// duplicateGroupStats summarizes the size distribution of duplicate groups.
// Returns nil when the input had no duplicates.
func duplicateGroupStats(occurrences []int) *jobstore.DuplicateGroupStats {
	var groups stats.Float64Data
	for _, n := range occurrences {
		if n > 1 {
			groups = append(groups, float64(n))
		}
	}
	if len(groups) == 0 {
		return nil
	}

	mean, err := stats.Mean(groups)
	if err != nil {
		return nil
	}
	max, err := stats.Max(groups)
	if err != nil {
		return nil
	}
	return &jobstore.DuplicateGroupStats{
		Groups:        len(groups),
		MeanGroupSize: mean,
		MaxGroupSize:  int(max),
	}
}
