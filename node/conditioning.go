package node

// Conditioning mirrors the host's conditioning structure: a list of entries,
// each an opaque payload plus a property map. The mixer never looks inside
// the payload; it only extends the per-entry control list.
type Conditioning []Entry

// Entry is one conditioning entry.
type Entry struct {
	Cond  any
	Props map[string]any
}

// controlKey is the property under which control entries accumulate.
const controlKey = "control"

// Control is one applied control entry: net handle, prepared hint image,
// strength, and the fraction of the sampling range it covers.
type Control struct {
	Net      any
	Hint     *Tensor
	Strength float64
	Start    float64
	End      float64
}

// Controls returns the entry's control list, nil if none was applied.
func (e Entry) Controls() []Control {
	ctl, _ := e.Props[controlKey].([]Control)
	return ctl
}

// withControl returns a copy of the conditioning where every entry's control
// list gains ctl. Property maps are copied per entry so callers holding the
// original conditioning never observe the mutation.
func (c Conditioning) withControl(ctl Control) Conditioning {
	out := make(Conditioning, 0, len(c))
	for _, e := range c {
		props := make(map[string]any, len(e.Props)+1)
		for k, v := range e.Props {
			props[k] = v
		}
		if existing, ok := props[controlKey].([]Control); ok {
			props[controlKey] = append(append([]Control(nil), existing...), ctl)
		} else {
			props[controlKey] = []Control{ctl}
		}
		out = append(out, Entry{Cond: e.Cond, Props: props})
	}
	return out
}
