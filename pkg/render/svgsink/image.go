package svgsink

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/layercake/pkg/geom"
	"github.com/matzehuels/layercake/pkg/resolve"
	"github.com/matzehuels/layercake/pkg/scene"
)

// drawImage embeds bitmap content as a base64 PNG. Fit mapping happens
// before embedding so the element's box matches the layer box exactly.
func (s *Surface) drawImage(l *scene.Image, res resolve.Resolved) error {
	src := l.Loaded()
	if src == nil {
		loaded, err := imaging.Open(l.Source())
		if err != nil {
			return fmt.Errorf("layer %q: load image %s: %w", l.ID(), l.Source(), err)
		}
		src = loaded
	}

	rect := res.Rect()
	w, h := int(math.Round(rect.W)), int(math.Round(rect.H))
	if w <= 0 || h <= 0 {
		return nil
	}
	fitted := fitImage(src, w, h, l.Fit())

	radius, err := l.Radius().Resolve(geom.AxisX, float64(s.w), float64(s.h))
	if err != nil {
		return fmt.Errorf("layer %q radius: %w", l.ID(), err)
	}

	data, err := encodePNG(fitted)
	if err != nil {
		return fmt.Errorf("layer %q: %w", l.ID(), err)
	}

	clip := ""
	if radius > 0 {
		id := s.nextID("clip")
		fmt.Fprintf(&s.defs, `<clipPath id="%s"><rect x="%s" y="%s" width="%s" height="%s" rx="%s"/></clipPath>`+"\n",
			id, num(rect.X), num(rect.Y), num(rect.W), num(rect.H),
			num(min(radius, min(rect.W, rect.H)/2)))
		clip = fmt.Sprintf(` clip-path="url(#%s)"`, id)
	}

	opacity := ""
	if op := clamp01(l.Opacity()); op < 1 {
		opacity = fmt.Sprintf(` opacity="%s"`, num(op))
	}

	fb := fitted.Bounds()
	fmt.Fprintf(&s.body, `<image x="%s" y="%s" width="%s" height="%s" href="data:image/png;base64,%s"%s%s%s/>`+"\n",
		num(rect.X), num(rect.Y), num(float64(fb.Dx())), num(float64(fb.Dy())),
		data, clip, opacity, transformAttr(l, res.Origin))
	return nil
}

// fitImage maps source content into a w x h box per the fit mode.
func fitImage(src image.Image, w, h int, fit scene.ImageFit) image.Image {
	switch fit {
	case scene.FitStretch:
		return imaging.Resize(src, w, h, imaging.Lanczos)
	case scene.FitContain:
		return imaging.Fit(src, w, h, imaging.Lanczos)
	case scene.FitNone:
		return src
	default: // FitCover and unset
		return imaging.Fill(src, w, h, imaging.Center, imaging.Lanczos)
	}
}
