package domain

import "strings"

// Filter describes the multi-criterion drill search. Criteria combine with
// AND; an empty criterion excludes nothing, so the zero Filter returns the
// full catalog unchanged.
type Filter struct {
	SearchQuery  string
	AgeGroups    []string
	Categories   []DrillCategory
	SessionFocus []string
}

// IsZero reports whether no criterion is set.
func (f Filter) IsZero() bool {
	return strings.TrimSpace(f.SearchQuery) == "" &&
		len(f.AgeGroups) == 0 &&
		len(f.Categories) == 0 &&
		len(f.SessionFocus) == 0
}

// Apply returns the drills matching every set criterion, preserving the
// catalog order of the input.
func (f Filter) Apply(drills []Drill) []Drill {
	matched := make([]Drill, 0, len(drills))
	for _, drill := range drills {
		if f.matches(drill) {
			matched = append(matched, drill)
		}
	}
	return matched
}

func (f Filter) matches(drill Drill) bool {
	query := strings.ToLower(strings.TrimSpace(f.SearchQuery))
	if query != "" && !strings.Contains(strings.ToLower(drill.Name), query) {
		return false
	}
	if len(f.AgeGroups) > 0 && !sharesAgeGroup(f.AgeGroups, drill.AgeGroups) {
		return false
	}
	if len(f.Categories) > 0 && !containsCategory(f.Categories, drill.Category) {
		return false
	}
	if len(f.SessionFocus) > 0 && !matchesFocus(f.SessionFocus, drill.Tags) {
		return false
	}
	return true
}

func sharesAgeGroup(wanted, actual []string) bool {
	for _, want := range wanted {
		for _, have := range actual {
			if want == have {
				return true
			}
		}
	}
	return false
}

func containsCategory(wanted []DrillCategory, actual DrillCategory) bool {
	for _, want := range wanted {
		if want == actual {
			return true
		}
	}
	return false
}

// matchesFocus reports whether any tag contains any focus keyword as a
// case-insensitive substring.
func matchesFocus(focuses, tags []string) bool {
	for _, focus := range focuses {
		focus = strings.ToLower(focus)
		for _, tag := range tags {
			if strings.Contains(strings.ToLower(tag), focus) {
				return true
			}
		}
	}
	return false
}
