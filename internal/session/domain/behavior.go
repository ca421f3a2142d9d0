package domain

// BehaviorStatus describes the one-click behavior rating for a player.
type BehaviorStatus string

const (
	// BehaviorStatusNone indicates no rating recorded.
	BehaviorStatusNone BehaviorStatus = "None"
	// BehaviorStatusGreen indicates good behavior.
	BehaviorStatusGreen BehaviorStatus = "Green"
	// BehaviorStatusYellow indicates a warning.
	BehaviorStatusYellow BehaviorStatus = "Yellow"
	// BehaviorStatusRed indicates a serious incident.
	BehaviorStatusRed BehaviorStatus = "Red"
)

// IsValid reports whether the behavior status is supported.
func (s BehaviorStatus) IsValid() bool {
	switch s {
	case BehaviorStatusNone, BehaviorStatusGreen, BehaviorStatusYellow, BehaviorStatusRed:
		return true
	default:
		return false
	}
}

// Next advances one step around the fixed behavior ring
// Green → Yellow → Red → None → Green. Unknown values normalize to Green.
func (s BehaviorStatus) Next() BehaviorStatus {
	switch s {
	case BehaviorStatusGreen:
		return BehaviorStatusYellow
	case BehaviorStatusYellow:
		return BehaviorStatusRed
	case BehaviorStatusRed:
		return BehaviorStatusNone
	default:
		return BehaviorStatusGreen
	}
}

// BehaviorTag labels what a behavior rating was about.
type BehaviorTag string

const (
	// BehaviorTagListening marks listening and attention.
	BehaviorTagListening BehaviorTag = "Listening"
	// BehaviorTagRespect marks respect toward others.
	BehaviorTagRespect BehaviorTag = "Respect"
	// BehaviorTagEffort marks effort and engagement.
	BehaviorTagEffort BehaviorTag = "Effort"
	// BehaviorTagAggression marks aggressive play or conduct.
	BehaviorTagAggression BehaviorTag = "Aggression"
	// BehaviorTagDistraction marks distracted or disruptive moments.
	BehaviorTagDistraction BehaviorTag = "Distraction"
)

// IsValid reports whether the behavior tag is supported.
func (t BehaviorTag) IsValid() bool {
	switch t {
	case BehaviorTagListening, BehaviorTagRespect, BehaviorTagEffort,
		BehaviorTagAggression, BehaviorTagDistraction:
		return true
	default:
		return false
	}
}

// Attendance records whether one player attended one session. It is keyed
// by (SessionID, PlayerID).
type Attendance struct {
	SessionID string
	PlayerID  string
	Present   bool
}

// BehaviorEntry records one player's behavior during one session. It is
// keyed by (SessionID, PlayerID) and written for every rostered player at
// session start regardless of attendance; readers must suppress the status
// when the matching Attendance is absent.
type BehaviorEntry struct {
	SessionID string
	PlayerID  string
	Status    BehaviorStatus
	Tags      []BehaviorTag
	Note      string
}

// HasTag reports whether the entry carries the tag.
func (e BehaviorEntry) HasTag(tag BehaviorTag) bool {
	for _, have := range e.Tags {
		if have == tag {
			return true
		}
	}
	return false
}

// ToggleTag adds the tag when missing and removes it when present,
// preserving the order of the remaining tags.
func (e BehaviorEntry) ToggleTag(tag BehaviorTag) BehaviorEntry {
	if !tag.IsValid() {
		return e
	}
	if !e.HasTag(tag) {
		tags := make([]BehaviorTag, 0, len(e.Tags)+1)
		tags = append(tags, e.Tags...)
		e.Tags = append(tags, tag)
		return e
	}
	tags := make([]BehaviorTag, 0, len(e.Tags))
	for _, have := range e.Tags {
		if have != tag {
			tags = append(tags, have)
		}
	}
	if len(tags) == 0 {
		tags = nil
	}
	e.Tags = tags
	return e
}
