package topology

// PreserveIDs copies the id of every named geometry in src's object onto
// the geometry of the same name in dst's object, so references keyed by id
// survive a rebuild. It returns the number of ids copied.
func PreserveIDs(dst, src *Topology, object string) int {
	if dst == nil || src == nil {
		return 0
	}
	from, to := src.Objects[object], dst.Objects[object]
	if from == nil || to == nil {
		return 0
	}

	ids := make(map[string]interface{})
	for _, g := range from.Members() {
		if g == nil || g.ID == nil {
			continue
		}
		if name := g.Name(); name != "" {
			ids[name] = g.ID
		}
	}

	n := 0
	for _, g := range to.Members() {
		if g == nil {
			continue
		}
		if id, ok := ids[g.Name()]; ok {
			g.ID = id
			n++
		}
	}
	return n
}
