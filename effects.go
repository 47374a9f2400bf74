package reveal

// hidden returns the visible style modified by fn, with zero opacity unless
// fn sets it.
func hidden(fn func(*Style)) Style {
	s := Hidden()
	if fn != nil {
		fn(&s)
	}
	return s
}

// opaque returns the visible style modified by fn.
func opaque(fn func(*Style)) Style {
	s := Visible()
	if fn != nil {
		fn(&s)
	}
	return s
}

// BuiltinPresets returns the default effect catalog. Effects missing from
// the preset table start from Hidden().
func BuiltinPresets() map[string]Preset {
	p := map[string]Preset{
		"fade":       {From: hidden(nil)},
		"fade-up":    {From: hidden(func(s *Style) { s.TranslateY = 100 })},
		"fade-down":  {From: hidden(func(s *Style) { s.TranslateY = -100 })},
		"fade-left":  {From: hidden(func(s *Style) { s.TranslateX = 100 })},
		"fade-right": {From: hidden(func(s *Style) { s.TranslateX = -100 })},

		"slide-up":    {From: opaque(func(s *Style) { s.TranslateYPct = 100 })},
		"slide-down":  {From: opaque(func(s *Style) { s.TranslateYPct = -100 })},
		"slide-left":  {From: opaque(func(s *Style) { s.TranslateXPct = 100 })},
		"slide-right": {From: opaque(func(s *Style) { s.TranslateXPct = -100 })},

		"zoom-in":       {From: hidden(func(s *Style) { s.Scale = 0.5 })},
		"zoom-in-up":    {From: hidden(func(s *Style) { s.Scale, s.TranslateY = 0.5, 100 })},
		"zoom-in-down":  {From: hidden(func(s *Style) { s.Scale, s.TranslateY = 0.5, -100 })},
		"zoom-in-left":  {From: hidden(func(s *Style) { s.Scale, s.TranslateX = 0.5, 100 })},
		"zoom-in-right": {From: hidden(func(s *Style) { s.Scale, s.TranslateX = 0.5, -100 })},

		"flip":       {From: opaque(func(s *Style) { s.Perspective, s.RotateX = 2500, -90 })},
		"flip-up":    {From: opaque(func(s *Style) { s.Perspective, s.RotateX = 2500, -90 })},
		"flip-down":  {From: opaque(func(s *Style) { s.Perspective, s.RotateX = 2500, 90 })},
		"flip-left":  {From: opaque(func(s *Style) { s.Perspective, s.RotateY = 2500, -90 })},
		"flip-right": {From: opaque(func(s *Style) { s.Perspective, s.RotateY = 2500, 90 })},

		"blur-in":  {From: hidden(func(s *Style) { s.Blur = 20 })},
		"blur-out": {From: opaque(nil)},
		"glow-in":  {From: hidden(func(s *Style) { s.Brightness = 0 })},

		"bounce-in": {From: hidden(func(s *Style) { s.Scale = 0.3 })},

		"clip-in":            {From: hidden(func(s *Style) { s.ClipRight = 1 })},
		"clip-in-vertical":   {From: hidden(func(s *Style) { s.ClipBottom = 1 })},
		"clip-in-horizontal": {From: hidden(func(s *Style) { s.ClipRight = 1 })},

		"flip-3d":            {From: opaque(func(s *Style) { s.Perspective, s.RotateX = 2500, -90 })},
		"flip-3d-vertical":   {From: opaque(func(s *Style) { s.Perspective, s.RotateX = 2500, -90 })},
		"flip-3d-horizontal": {From: opaque(func(s *Style) { s.Perspective, s.RotateY = 2500, -90 })},

		"shadow-in": {From: hidden(func(s *Style) { s.Shadow = 0 }), To: styleRef(opaque(func(s *Style) { s.Shadow = 1 }))},

		"spring-up": {From: hidden(func(s *Style) { s.TranslateY = 60 }), Spring: true},
		"spring-in": {From: hidden(func(s *Style) { s.Scale = 0.6 }), Spring: true},

		"stagger": {From: hidden(nil), Stagger: true},
	}

	// Attention seekers start hidden, become visible on reveal and then run
	// their keyframe list.
	for name, from := range map[string]Style{
		"bounce":      hidden(nil),
		"tada":        hidden(nil),
		"pulse":       hidden(nil),
		"rubber-band": hidden(func(s *Style) { s.Scale = 0 }),
		"shake":       hidden(nil),
		"pop":         hidden(func(s *Style) { s.Scale = 0 }),
		"swing":       hidden(func(s *Style) { s.Rotate = -30 }),
	} {
		p[name] = Preset{From: from, Keyframes: name, Class: "aos-" + name}
	}
	return p
}

func styleRef(s Style) *Style {
	return &s
}
