package constants

// Format selects how the surviving world is reported.
type Format string

const (
	// FormatText prints one line per surviving colony, "Name dir=Dest ...".
	FormatText Format = "text"

	// FormatDOT renders a Graphviz digraph.
	FormatDOT Format = "dot"

	// FormatJSON renders colonies, tunnels and the run summary as JSON.
	FormatJSON Format = "json"
)

// Valid returns true if the format is a recognized value.
func (f Format) Valid() bool {
	switch f {
	case FormatText, FormatDOT, FormatJSON:
		return true
	}
	return false
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}
