package hierarchy

// Statistics summarizes one extraction run. Only states that received at
// least one LGA are counted or listed.
type Statistics struct {
	StateCount int      `json:"total_states"`
	LGACount   int      `json:"total_lgas"`
	WardCount  int      `json:"total_wards"`
	StateNames []string `json:"states"`
}

// Stats computes the document's summary statistics.
func (d *Document) Stats() Statistics {
	stats := Statistics{StateNames: []string{}}
	for _, st := range d.States {
		if len(st.LGAs) == 0 {
			continue
		}
		stats.StateCount++
		stats.StateNames = append(stats.StateNames, st.Name)
		stats.LGACount += len(st.LGAs)
		for _, l := range st.LGAs {
			stats.WardCount += len(l.Wards)
		}
	}
	return stats
}
