package wfst

// ParseSample recovers a state alignment from a linear path graph
// (the shape produced by composing FrameStateLattice with a path
// through MonophoneCycle): starting at g.Start(), it follows the first
// outgoing arc at each state until a state has none, collecting
// arc.ILabel-1 for every arc whose input label is not epsilon. Per
// spec.md §4.5, behavior on a non-linear graph is unspecified — this
// always takes the first arc at each state.
func ParseSample(g *Graph) []int {
	var out []int
	state := g.Start()
	for {
		arcs := g.Arcs(state)
		if len(arcs) == 0 {
			return out
		}
		arc := arcs[0]
		if label := arc.ILabel - 1; label >= 0 {
			out = append(out, label)
		}
		state = arc.Next
	}
}
