package cache

// ScopedKeyer prepends a fixed namespace to the keys of another Keyer, so
// several deployments can share one backend without reading each other's
// entries.
//
//	k := NewScopedKeyer(NewDefaultKeyer(), "staging:")
//	k.LayoutKey(h, opts) // "staging:layout:…"
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer returns a Keyer that namespaces inner's keys with prefix.
// A nil inner means [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = DefaultKeyer{}
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(graphHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
