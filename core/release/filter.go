package release

import "strings"

// WidebandMarker appears in wideband TOA file names. Narrowband files carry
// no marker.
const WidebandMarker = "wb"

// FilterByType keeps the names that belong to toaType ("nb" or "wb", any
// case). Wideband keeps names containing the marker, narrowband keeps the
// rest. The input order is kept.
func FilterByType(names []string, toaType string) []string {
	wide := strings.EqualFold(toaType, WidebandMarker)
	out := make([]string, 0, len(names))
	for _, n := range names {
		if strings.Contains(n, WidebandMarker) == wide {
			out = append(out, n)
		}
	}
	return out
}
