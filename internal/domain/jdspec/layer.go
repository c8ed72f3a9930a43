package jdspec

import "fmt"

// TechLayer is one of the six fixed technology categories used to partition
// skills and weights. Every layer-keyed structure carries all six keys.
type TechLayer string

const (
	LayerFrontend TechLayer = "frontend"
	LayerBackend  TechLayer = "backend"
	LayerDatabase TechLayer = "database"
	LayerCloud    TechLayer = "cloud"
	LayerDevops   TechLayer = "devops"
	LayerOthers   TechLayer = "others"
)

var layerOrder = []TechLayer{
	LayerFrontend,
	LayerBackend,
	LayerDatabase,
	LayerCloud,
	LayerDevops,
	LayerOthers,
}

// Layers returns the six layers in their fixed iteration order.
func Layers() []TechLayer {
	out := make([]TechLayer, len(layerOrder))
	copy(out, layerOrder)
	return out
}

// IsValidLayer reports whether s names one of the six layers.
func IsValidLayer(s TechLayer) bool {
	switch s {
	case LayerFrontend, LayerBackend, LayerDatabase, LayerCloud, LayerDevops, LayerOthers:
		return true
	default:
		return false
	}
}

// ParseLayer converts a raw string into a TechLayer.
func ParseLayer(s string) (TechLayer, error) {
	l := TechLayer(s)
	if !IsValidLayer(l) {
		return "", fmt.Errorf("unknown tech layer %q", s)
	}
	return l, nil
}
