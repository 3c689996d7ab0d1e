// Package capability tracks which record categories the current
// deployment supports. Some site deployments lack the child tables for
// crew attendance, work activities, materials, equipment logs, and
// visitors; callers check availability once instead of handling a
// per-call failure from every data-access function.
package capability

import (
	"fmt"
	"sort"
	"strings"
)

// Category names a record category whose backing table may be absent.
type Category string

const (
	CrewAttendance Category = "crew_attendance"
	WorkActivities Category = "work_activities"
	Materials      Category = "materials"
	EquipmentLogs  Category = "equipment_logs"
	Visitors       Category = "visitors"
)

// All lists every negotiable category.
var All = []Category{CrewAttendance, WorkActivities, Materials, EquipmentLogs, Visitors}

// Negotiable reports whether the name matches one of the negotiable
// record categories. Anything else is a free-form label.
func Negotiable(c Category) bool {
	for _, known := range All {
		if c == known {
			return true
		}
	}
	return false
}

// Set records which categories are available.
type Set struct {
	enabled map[Category]bool
}

// NewSet builds a capability set with the given categories enabled.
func NewSet(enabled ...Category) *Set {
	s := &Set{enabled: make(map[Category]bool, len(enabled))}
	for _, c := range enabled {
		s.enabled[c] = true
	}
	return s
}

// DefaultSet reflects the current deployment, where none of the child
// tables exist yet.
func DefaultSet() *Set {
	return NewSet()
}

// Enabled reports whether the category is available.
func (s *Set) Enabled(c Category) bool {
	return s != nil && s.enabled[c]
}

// Available returns the enabled categories in stable order.
func (s *Set) Available() []Category {
	if s == nil {
		return nil
	}
	out := make([]Category, 0, len(s.enabled))
	for c, ok := range s.enabled {
		if ok {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Require returns a descriptive error when the category is missing,
// naming the categories that are available.
func (s *Set) Require(c Category) error {
	if s.Enabled(c) {
		return nil
	}

	avail := s.Available()
	if len(avail) == 0 {
		return fmt.Errorf("%s records are not available in this deployment", c)
	}

	names := make([]string, len(avail))
	for i, a := range avail {
		names[i] = string(a)
	}
	return fmt.Errorf("%s records are not available in this deployment (available: %s)",
		c, strings.Join(names, ", "))
}
