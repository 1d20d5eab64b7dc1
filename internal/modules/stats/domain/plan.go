package domain

// PlanEntry is a per-subject daily minute target with accumulated progress.
type PlanEntry struct {
	Subject string `json:"subject"`
	Target  int    `json:"target"`
	Done    int    `json:"done"`
}

// Plan is an ordered list of entries; auto-chaining walks it in insertion
// order.
type Plan []PlanEntry

// Apply credits minutes to the subject's entry, clamping Done at Target.
// Subjects without a plan entry are ignored.
func (p Plan) Apply(subject string, minutes int) Plan {
	for i := range p {
		if p[i].Subject != subject {
			continue
		}
		p[i].Done += minutes
		if p[i].Done > p[i].Target {
			p[i].Done = p[i].Target
		}
	}
	return p
}

// NextUnmet returns the first entry whose target is not yet met.
func (p Plan) NextUnmet() (PlanEntry, bool) {
	for _, entry := range p {
		if entry.Done < entry.Target {
			return entry, true
		}
	}
	return PlanEntry{}, false
}

// SetTarget upserts the target for a subject, keeping insertion order for
// existing entries.
func (p Plan) SetTarget(subject string, target int) Plan {
	for i := range p {
		if p[i].Subject == subject {
			p[i].Target = target
			if p[i].Done > target {
				p[i].Done = target
			}
			return p
		}
	}
	return append(p, PlanEntry{Subject: subject, Target: target})
}

// Remove deletes a subject's entry.
func (p Plan) Remove(subject string) Plan {
	out := p[:0]
	for _, entry := range p {
		if entry.Subject != subject {
			out = append(out, entry)
		}
	}
	return out
}

// ClearDone zeroes progress for a new plan cycle, keeping targets.
func (p Plan) ClearDone() Plan {
	for i := range p {
		p[i].Done = 0
	}
	return p
}
