package loader

// Merge layers configuration maps, later layers winning. Config loading
// passes the file layer first and the environment layer last, so a
// CMDLOG_ variable overrides the same key from the file.
//
// Sections present in several layers are merged key by key; any other value
// replaces the earlier one outright. Nil layers are skipped. The inputs are
// not modified and the result never shares a section map with them.
func Merge(layers ...map[string]any) map[string]any {
	out := make(map[string]any)
	for _, layer := range layers {
		overlay(out, layer)
	}
	return out
}

// overlay writes src onto dst, copying nested maps.
func overlay(dst, src map[string]any) {
	for key, val := range src {
		section, ok := val.(map[string]any)
		if !ok {
			dst[key] = val
			continue
		}
		existing, ok := dst[key].(map[string]any)
		if !ok {
			existing = make(map[string]any, len(section))
			dst[key] = existing
		}
		overlay(existing, section)
	}
}
