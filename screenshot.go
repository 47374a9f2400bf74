package reveal

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"gopkg.in/yaml.v3"
)

// Screenshot queues a labeled capture. Run takes it after the next frame it
// draws and writes the rendered PNG plus a YAML layout file; FlushScreenshots
// takes it without a window and writes the layout file only. Files go to
// ScreenshotDir and are named after the document clock.
func (d *Document) Screenshot(label string) {
	d.screenshotQueue = append(d.screenshotQueue, label)
}

// PendingScreenshots returns the queued screenshot labels.
func (d *Document) PendingScreenshots() []string {
	return d.screenshotQueue
}

// BoxPlacement is where Draw paints one element, in screen coordinates.
// X, Y, Width and Height are the clipped box before its transform.
type BoxPlacement struct {
	ID      uint32  `yaml:"id"`
	Tag     string  `yaml:"tag"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	OffsetX float64 `yaml:"offsetX"`
	OffsetY float64 `yaml:"offsetY"`
	Scale   float64 `yaml:"scale"`
	Rotate  float64 `yaml:"rotate"` // degrees
	Alpha   float64 `yaml:"alpha"`
}

// Layout returns the placement of every box Draw would paint, in paint
// order. It needs no graphics context.
func (d *Document) Layout() []BoxPlacement {
	var out []BoxPlacement
	d.place(func(el *Element, t boxTransform) {
		out = append(out, BoxPlacement{
			ID:      el.ID,
			Tag:     el.Tag,
			X:       t.x,
			Y:       t.y,
			Width:   t.w,
			Height:  t.h,
			OffsetX: t.dx,
			OffsetY: t.dy,
			Scale:   t.scale,
			Rotate:  t.rotate * 180 / math.Pi,
			Alpha:   t.alpha,
		})
	})
	return out
}

// layoutCapture is the YAML file written for each screenshot.
type layoutCapture struct {
	Label    string         `yaml:"label"`
	Time     time.Duration  `yaml:"time"`
	Viewport Rect           `yaml:"viewport"`
	Boxes    []BoxPlacement `yaml:"boxes"`
}

// FlushScreenshots writes the layout file of every queued screenshot and
// clears the queue.
func (d *Document) FlushScreenshots() error {
	return d.capture(nil)
}

// capture drains the screenshot queue. With a rendered frame each label
// also gets a PNG.
func (d *Document) capture(screen *ebiten.Image) error {
	if len(d.screenshotQueue) == 0 {
		return nil
	}
	labels := d.screenshotQueue
	d.screenshotQueue = nil
	if err := os.MkdirAll(d.ScreenshotDir, 0o755); err != nil {
		return fmt.Errorf("screenshot directory: %w", err)
	}

	var frame *image.RGBA
	if screen != nil {
		b := screen.Bounds()
		// ReadPixels yields premultiplied RGBA, which is image.RGBA's layout.
		frame = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		screen.ReadPixels(frame.Pix)
	}
	layout := layoutCapture{Time: d.now, Viewport: d.viewport.Rect(), Boxes: d.Layout()}

	var errs []error
	for _, label := range labels {
		base := filepath.Join(d.ScreenshotDir, captureName(d.now, label))
		layout.Label = label
		errs = append(errs, writeLayout(base+".yaml", layout))
		if frame != nil {
			errs = append(errs, writePNG(base+".png", frame))
		}
	}
	return errors.Join(errs...)
}

// captureName orders captures by document time: "<ms>_<label>".
func captureName(now time.Duration, label string) string {
	return fmt.Sprintf("%08d_%s", now.Milliseconds(), sanitizeLabel(label))
}

func writeLayout(path string, layout layoutCapture) error {
	data, err := yaml.Marshal(layout)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel keeps ASCII letters, digits, '-' and '.', turns every
// other rune into '_' and names empty labels "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		if r == '-' || r == '.' || r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return r
		}
		return '_'
	}, label)
}
