package aim

import (
	"image"
	"image/color"

	"github.com/jakecoffman/cp"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/milk9111/runrotate/prefabs"
)

// Thresholds select pixels by HSV range. Hue is in degrees; a range with
// HMin > HMax wraps through 0.
type Thresholds struct {
	HMin, HMax float64
	SMin, SMax int
	VMin, VMax int
	MinPixels  int
}

func ThresholdsFromSpec(s *prefabs.AimSpec) Thresholds {
	return Thresholds{
		HMin: s.HMin, HMax: s.HMax,
		SMin: s.SMin, SMax: s.SMax,
		VMin: s.VMin, VMax: s.VMax,
		MinPixels: s.MinPixels,
	}
}

func (t Thresholds) Match(c color.Color) bool {
	col, ok := colorful.MakeColor(c)
	if !ok {
		return false
	}
	h, s, v := col.Hsv()
	if t.HMin <= t.HMax {
		if h < t.HMin || h > t.HMax {
			return false
		}
	} else if h < t.HMin && h > t.HMax {
		return false
	}
	s255, v255 := s*255, v*255
	return s255 >= float64(t.SMin) && s255 <= float64(t.SMax) &&
		v255 >= float64(t.VMin) && v255 <= float64(t.VMax)
}

// Detect returns the bounding box of the largest 4-connected region of
// matching pixels. Regions smaller than MinPixels do not count.
func Detect(img image.Image, th Thresholds) (image.Rectangle, bool) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return image.Rectangle{}, false
	}
	mask := make([]bool, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			mask[y*w+x] = th.Match(img.At(b.Min.X+x, b.Min.Y+y))
		}
	}

	var best image.Rectangle
	bestCount := 0
	seen := make([]bool, w*h)
	stack := make([]int, 0, 64)
	for start := range mask {
		if !mask[start] || seen[start] {
			continue
		}
		seen[start] = true
		stack = append(stack[:0], start)
		count := 0
		box := image.Rect(start%w, start/w, start%w+1, start/w+1)
		visit := func(n int) {
			if mask[n] && !seen[n] {
				seen[n] = true
				stack = append(stack, n)
			}
		}
		for len(stack) > 0 {
			i := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			count++
			x, y := i%w, i/w
			box = box.Union(image.Rect(x, y, x+1, y+1))
			if x > 0 {
				visit(i - 1)
			}
			if x < w-1 {
				visit(i + 1)
			}
			if y > 0 {
				visit(i - w)
			}
			if y < h-1 {
				visit(i + w)
			}
		}
		if count > bestCount {
			best, bestCount = box, count
		}
	}
	if bestCount == 0 || bestCount < th.MinPixels {
		return image.Rectangle{}, false
	}
	return best.Add(b.Min), true
}

// AimPoint maps a blob in frame coordinates to a display point. The camera
// faces the player, so x is mirrored.
func AimPoint(blob, frame image.Rectangle, display cp.Vector) cp.Vector {
	sx := display.X / float64(frame.Dx())
	sy := display.Y / float64(frame.Dy())
	x := float64(blob.Min.X-frame.Min.X) * sx
	y := float64(blob.Min.Y-frame.Min.Y) * sy
	bw := float64(blob.Dx()) * sx
	bh := float64(blob.Dy()) * sy
	return cp.Vector{X: display.X - x + bw/2, Y: y + bh/2}
}
