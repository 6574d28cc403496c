package compiler

import "fmt"

// DiffType represents the type of change a step will make.
type DiffType string

const (
	// DiffTypeAdd indicates something will be installed or created.
	DiffTypeAdd DiffType = "add"
	// DiffTypeModify indicates something existing will be upgraded or changed.
	DiffTypeModify DiffType = "modify"
	// DiffTypeNone indicates no change is needed.
	DiffTypeNone DiffType = "none"
)

// String returns the string representation of the diff type.
func (d DiffType) String() string {
	return string(d)
}

// Diff is the planned change of a step, shown by --dry-run.
type Diff struct {
	diffType DiffType
	resource string
	name     string
	detail   string
}

// NewDiff creates a new Diff.
func NewDiff(diffType DiffType, resource, name, detail string) Diff {
	return Diff{
		diffType: diffType,
		resource: resource,
		name:     name,
		detail:   detail,
	}
}

// NoChange returns a DiffTypeNone diff for resource/name.
func NoChange(resource, name string) Diff {
	return NewDiff(DiffTypeNone, resource, name, "")
}

// Type returns the diff type.
func (d Diff) Type() DiffType {
	return d.diffType
}

// Resource returns the resource kind (e.g. "apt-packages", "pipx-tool").
func (d Diff) Resource() string {
	return d.resource
}

// Name returns the resource name.
func (d Diff) Name() string {
	return d.name
}

// Detail returns the command or value behind the change.
func (d Diff) Detail() string {
	return d.detail
}

// Summary returns a human-readable summary of the diff.
func (d Diff) Summary() string {
	prefix := " "
	switch d.diffType {
	case DiffTypeAdd:
		prefix = "+"
	case DiffTypeModify:
		prefix = "~"
	case DiffTypeNone:
	}
	if d.detail == "" {
		return fmt.Sprintf("%s %s %s", prefix, d.resource, d.name)
	}
	return fmt.Sprintf("%s %s %s (%s)", prefix, d.resource, d.name, d.detail)
}

// IsEmpty returns true if this diff represents no change.
func (d Diff) IsEmpty() bool {
	return d.diffType == DiffTypeNone || d.diffType == ""
}
