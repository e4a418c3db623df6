package generator

// Base provides common plumbing for generators (identity).
type Base struct {
	info Info
}

// NewBase seeds the helper with generator info.
func NewBase(info Info) Base {
	return Base{info: info}
}

// Info implements Generator.Info.
func (b *Base) Info() Info {
	return b.info
}
