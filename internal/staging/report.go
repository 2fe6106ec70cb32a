package staging

// Report is the outcome of validating every record of a store
type Report struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

func newReport() Report {
	return Report{Valid: true, Errors: []string{}}
}

func (r *Report) add(prefix string, messages []string) {
	for _, msg := range messages {
		r.Errors = append(r.Errors, prefix+msg)
	}
	if len(r.Errors) > 0 {
		r.Valid = false
	}
}

// Merge combines two reports
func (r Report) Merge(other Report) Report {
	merged := Report{Valid: r.Valid && other.Valid}
	merged.Errors = append(append([]string{}, r.Errors...), other.Errors...)
	return merged
}
