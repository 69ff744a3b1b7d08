package core

import "sync"

// AllClasses is the dashboard filter value that selects every class.
const AllClasses = "Semua"

// Roster is the ordered, append-only student table of one session.
// Insertion order is display and print order. Duplicate NISNs are kept.
type Roster struct {
	mu      sync.RWMutex
	records []StudentRecord
}

// NewRoster returns an empty roster.
func NewRoster() *Roster {
	return &Roster{records: []StudentRecord{}}
}

// Append adds a single record at the end of the roster.
func (r *Roster) Append(rec StudentRecord) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
	return len(r.records)
}

// AppendAll adds a whole batch under one lock, so readers never observe a
// partially applied import. It returns the new roster length.
func (r *Roster) AppendAll(recs []StudentRecord) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, recs...)
	return len(r.records)
}

// Len returns the number of records.
func (r *Roster) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// Records returns a copy of the roster in insertion order.
func (r *Roster) Records() []StudentRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]StudentRecord, len(r.records))
	copy(out, r.records)
	return out
}

// Filter returns the records of one class in insertion order.
// An empty class or AllClasses returns every record.
func (r *Roster) Filter(class string) []StudentRecord {
	if class == "" || class == AllClasses {
		return r.Records()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]StudentRecord, 0)
	for _, rec := range r.records {
		if rec.ClassName == class {
			out = append(out, rec)
		}
	}
	return out
}

// Classes returns the distinct class labels in first-seen order.
func (r *Roster) Classes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return distinctClasses(r.records)
}

// Stats computes the dashboard aggregates over the records of one class
// (AllClasses for everything). Nothing is cached.
func (r *Roster) Stats(class string) RosterStats {
	return ComputeStats(r.Filter(class))
}

// ComputeStats aggregates a slice of records.
func ComputeStats(recs []StudentRecord) RosterStats {
	return RosterStats{
		Total:   len(recs),
		Genders: GenderCounts(recs),
		Classes: ClassCounts(recs),
	}
}

// GenderCounts counts records by gender text, largest first. Ties keep the
// order in which each value first appeared.
func GenderCounts(recs []StudentRecord) []GenderCount {
	pos := make(map[Gender]int)
	out := make([]GenderCount, 0, 2)
	for _, rec := range recs {
		i, ok := pos[rec.Gender]
		if !ok {
			i = len(out)
			pos[rec.Gender] = i
			out = append(out, GenderCount{Gender: rec.Gender})
		}
		out[i].Count++
	}

	// insertion sort keeps equal counts stable
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Count > out[j-1].Count; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// ClassCounts counts records per class label in first-seen order.
func ClassCounts(recs []StudentRecord) []ClassCount {
	pos := make(map[string]int)
	out := make([]ClassCount, 0)
	for _, rec := range recs {
		i, ok := pos[rec.ClassName]
		if !ok {
			i = len(out)
			pos[rec.ClassName] = i
			out = append(out, ClassCount{ClassName: rec.ClassName})
		}
		out[i].Count++
	}
	return out
}

func distinctClasses(recs []StudentRecord) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, rec := range recs {
		if seen[rec.ClassName] {
			continue
		}
		seen[rec.ClassName] = true
		out = append(out, rec.ClassName)
	}
	return out
}
