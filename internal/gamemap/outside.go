package gamemap

import "fmt"

// Outside decides whether cells beyond the grid edge block sight.
type Outside uint8

const (
	// OutsideOpaque treats everything past the edge as solid rock.
	OutsideOpaque Outside = iota
	// OutsideTransparent lets sight run off the edge of the map.
	OutsideTransparent
)

func (o Outside) String() string {
	switch o {
	case OutsideOpaque:
		return "opaque"
	case OutsideTransparent:
		return "transparent"
	}
	return fmt.Sprintf("Outside(%d)", uint8(o))
}

// ParseOutside parses "opaque" or "transparent". The empty string means opaque.
func ParseOutside(s string) (Outside, error) {
	switch s {
	case "", "opaque":
		return OutsideOpaque, nil
	case "transparent":
		return OutsideTransparent, nil
	}
	return OutsideOpaque, fmt.Errorf("unknown outside policy %q", s)
}
