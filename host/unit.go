package host

// Unit is a measurement unit the host converts values into.
type Unit struct {
	Name string
	ID   int
}

func (u Unit) String() string {
	return u.Name
}

// Commonly used units. IDs are assigned by the host in a real deployment;
// these are the values used by the in-memory host.
var (
	Number  = Unit{Name: "Number", ID: 0}
	Bool    = Unit{Name: "Bool", ID: 1}
	Percent = Unit{Name: "Percent", ID: 2}
	Degrees = Unit{Name: "Degrees", ID: 3}
	Radians = Unit{Name: "Radians", ID: 4}
	Feet    = Unit{Name: "Feet", ID: 5}
	Knots   = Unit{Name: "Knots", ID: 6}
	Seconds = Unit{Name: "Seconds", ID: 7}
	Enum    = Unit{Name: "Enum", ID: 8}
	Mach    = Unit{Name: "Mach", ID: 9}
)

var unitsByName = map[string]Unit{}

func init() {
	for _, u := range []Unit{
		Number, Bool, Percent, Degrees, Radians,
		Feet, Knots, Seconds, Enum, Mach,
	} {
		unitsByName[u.Name] = u
	}
}

// LookupUnit finds a predefined unit by name.
func LookupUnit(name string) (Unit, bool) {
	u, ok := unitsByName[name]
	return u, ok
}
