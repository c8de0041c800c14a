package profileValidator

import (
	"math"
	"sort"
)

type SectionStatus struct {
	Name      string   `json:"name"`
	Completed bool     `json:"completed"`
	Errors    []string `json:"errors"`
}

type ProfileStatus struct {
	CompletionPercentage int             `json:"completionPercentage"`
	CompletedSections    int             `json:"completedSections"`
	TotalSections        int             `json:"totalSections"`
	SectionStatus        []SectionStatus `json:"sectionStatus"`
}

// Status runs each section's required-subset schema over the draft and
// reduces to a completion percentage. Pure: no I/O, cheap enough to call on
// every change.
func Status(d *ProfileDraft) ProfileStatus {
	statuses := make([]SectionStatus, 0, len(Sections))
	completed := 0

	for _, s := range Sections {
		fieldErrors := sectionRules[s].complete(d)
		msgs := make([]string, 0, len(fieldErrors))
		for _, field := range sortedKeys(fieldErrors) {
			msgs = append(msgs, fieldErrors[field])
		}
		ok := len(fieldErrors) == 0
		if ok {
			completed++
		}
		statuses = append(statuses, SectionStatus{
			Name:      string(s),
			Completed: ok,
			Errors:    msgs,
		})
	}

	total := len(Sections)
	pct := int(math.Round(100 * float64(completed) / float64(total)))

	return ProfileStatus{
		CompletionPercentage: pct,
		CompletedSections:    completed,
		TotalSections:        total,
		SectionStatus:        statuses,
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
