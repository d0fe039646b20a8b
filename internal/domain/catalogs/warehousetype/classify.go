package warehousetype

import "strings"

// Icon is a display icon token.
type Icon string

const (
	IconRawMaterial Icon = "pi-box"
	IconSpareParts  Icon = "pi-cog"
	IconFinished    Icon = "pi-check-square"
	IconDefault     Icon = "pi-building"
)

type rule struct {
	icon     Icon
	keywords []string
}

// rules are checked in order; the first group with a matching keyword wins.
var rules = []rule{
	{IconRawMaterial, []string{"hammadde", "raw"}},
	{IconSpareParts, []string{"yedek", "spare", "parca", "parça"}},
	{IconFinished, []string{"mamul", "bitmis", "bitmiş", "finished"}},
}

// Classify maps a warehouse type to its icon by keyword matching on the
// lower-cased code and name.
func Classify(name, code string) Icon {
	text := strings.ToLower(code + " " + name)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(text, kw) {
				return r.icon
			}
		}
	}
	return IconDefault
}
