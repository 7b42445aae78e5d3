package descriptor

import (
	"fmt"

	"github.com/neurospin/distmeta/pkg/classifier"
	"github.com/neurospin/distmeta/pkg/errors"
	"github.com/neurospin/distmeta/pkg/specifier"
)

// Validate checks the structural invariants of the descriptor:
//
//   - name present and well-formed
//   - version components non-negative
//   - every requires entry a parseable dependency specifier
//   - every classifier non-empty with non-empty segments
//   - every extra-requires group non-empty with parseable entries
//   - every provides entry a valid package name
//
// The first violation is returned as a code-carrying error.
func (d *Descriptor) Validate() error {
	if err := errors.ValidatePythonPackageName(d.Name); err != nil {
		return err
	}
	if err := d.Version.Validate(); err != nil {
		return err
	}
	if _, err := specifier.ParseAll(d.Requires); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidDescriptor, err, "requires")
	}
	if err := classifier.ValidateAll(d.Classifiers); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidDescriptor, err, "classifiers")
	}
	for group, entries := range d.ExtraRequires {
		if group == "" {
			return errors.New(errors.ErrCodeInvalidDescriptor, "extra requires group with empty name")
		}
		if len(entries) == 0 {
			return errors.New(errors.ErrCodeInvalidDescriptor, "extra requires group %q is empty", group)
		}
		if _, err := specifier.ParseAll(entries); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDescriptor, err, "extra requires group %q", group)
		}
	}
	for i, name := range d.Provides {
		if err := errors.ValidatePythonPackageName(name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDescriptor, err, "provides entry %d", i)
		}
	}
	return nil
}

// Problems runs the same checks as [Descriptor.Validate] but collects
// every violation instead of stopping at the first. Used by the CLI to
// report all issues in one pass.
func (d *Descriptor) Problems() []error {
	var problems []error
	if err := errors.ValidatePythonPackageName(d.Name); err != nil {
		problems = append(problems, err)
	}
	if err := d.Version.Validate(); err != nil {
		problems = append(problems, err)
	}
	for i, req := range d.Requires {
		if _, err := specifier.Parse(req); err != nil {
			problems = append(problems, fmt.Errorf("requires entry %d: %w", i, err))
		}
	}
	for i, c := range d.Classifiers {
		if _, err := classifier.Parse(c); err != nil {
			problems = append(problems, fmt.Errorf("classifier %d: %w", i, err))
		}
	}
	for group, entries := range d.ExtraRequires {
		if len(entries) == 0 {
			problems = append(problems, errors.New(errors.ErrCodeInvalidDescriptor, "extra requires group %q is empty", group))
			continue
		}
		for i, req := range entries {
			if _, err := specifier.Parse(req); err != nil {
				problems = append(problems, fmt.Errorf("extra requires %q entry %d: %w", group, i, err))
			}
		}
	}
	for i, name := range d.Provides {
		if err := errors.ValidatePythonPackageName(name); err != nil {
			problems = append(problems, fmt.Errorf("provides entry %d: %w", i, err))
		}
	}
	return problems
}
