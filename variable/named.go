package variable

import "github.com/sarchlab/simsync/host"

// Named is a scalar backed by a host named variable.
type Named struct {
	*Cacheable

	host   host.NamedVars
	dataID host.DataID
}

// NewNamed registers the name with the host and creates the variable.
// Application code obtains variables through the registry, which shares one
// instance per name and unit.
func NewNamed(h host.NamedVars, p Params) *Named {
	v := &Named{host: h}
	v.Cacheable = newCacheable(p, "named", v)
	v.dataID = h.RegisterNamedVar(p.Name)

	return v
}

// DataID returns the host handle of the variable.
func (v *Named) DataID() host.DataID {
	return v.dataID
}

// RawRead reads the value from the host.
func (v *Named) RawRead() (float64, error) {
	return v.host.NamedVarValue(v.dataID, v.unit)
}

// RawWrite writes the value to the host.
func (v *Named) RawWrite(value float64) error {
	return v.host.SetNamedVarValue(v.dataID, v.unit, value)
}
