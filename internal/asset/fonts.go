package asset

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
	"golang.org/x/image/font/opentype"
)

const DefaultFamily = "goregular"

var families = map[string][]byte{
	"goregular":    goregular.TTF,
	"gobold":       gobold.TTF,
	"goitalic":     goitalic.TTF,
	"gobolditalic": gobolditalic.TTF,
	"gomedium":     gomedium.TTF,
	"gomono":       gomono.TTF,
	"gomonobold":   gomonobold.TTF,
	"gosmallcaps":  gosmallcaps.TTF,
}

// parsed caches fonts by family name.
var parsed sync.Map

// Families lists the built-in font family names.
func Families() []string {
	return slices.Sorted(maps.Keys(families))
}

// loadFont resolves a family name, or parses data when it is not empty.
func loadFont(family string, data []byte) (*opentype.Font, error) {
	if len(data) > 0 {
		f, err := opentype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%w: font: %w", ErrDecode, err)
		}
		return f, nil
	}

	if family == "" {
		family = DefaultFamily
	}
	if f, ok := parsed.Load(family); ok {
		return f.(*opentype.Font), nil
	}

	ttf, ok := families[family]
	if !ok {
		return nil, fmt.Errorf("%w: unknown font family %q", ErrInvalidSource, family)
	}
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", family, err)
	}
	actual, _ := parsed.LoadOrStore(family, f)
	return actual.(*opentype.Font), nil
}
