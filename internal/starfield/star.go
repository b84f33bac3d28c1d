package starfield

import "fmt"

// Size is the visual scale class of a star.
type Size uint8

const (
	SizeSmall Size = iota
	SizeMedium
	SizeLarge
)

var sizeNames = [...]string{"small", "medium", "large"}

func (s Size) String() string {
	if int(s) < len(sizeNames) {
		return sizeNames[s]
	}
	return fmt.Sprintf("Size(%d)", s)
}

func (s Size) MarshalText() ([]byte, error) {
	if int(s) >= len(sizeNames) {
		return nil, fmt.Errorf("starfield: invalid size %d", s)
	}
	return []byte(sizeNames[s]), nil
}

func (s *Size) UnmarshalText(b []byte) error {
	i, err := lookup(sizeNames[:], string(b), "size")
	if err != nil {
		return err
	}
	*s = Size(i)
	return nil
}

// Color is the visual colour class of a star.
type Color uint8

const (
	ColorWhite Color = iota
	ColorBlue
	ColorPurple
)

var colorNames = [...]string{"white", "blue", "purple"}

func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return fmt.Sprintf("Color(%d)", c)
}

func (c Color) MarshalText() ([]byte, error) {
	if int(c) >= len(colorNames) {
		return nil, fmt.Errorf("starfield: invalid color %d", c)
	}
	return []byte(colorNames[c]), nil
}

func (c *Color) UnmarshalText(b []byte) error {
	i, err := lookup(colorNames[:], string(b), "color")
	if err != nil {
		return err
	}
	*c = Color(i)
	return nil
}

// Animation names the flicker or pulse keyframes applied to a star.
type Animation uint8

const (
	SatelliteFlash Animation = iota
	SatelliteFlashDelay1
	SatelliteFlashDelay2
	SatelliteFlashDelay3
	SatelliteFlashRandom1
	SatelliteFlashRandom2
	SatelliteFlashRandom3
	SatelliteFlashRandom4
	SatelliteFlashRandom5
	LighthouseSignal
	LighthouseSignalDelay1
	LighthouseSignalDelay2
	LighthouseSignalDelay3
	LighthouseSignalRandom1
	LighthouseSignalRandom2
	LighthouseSignalRandom3
	LighthouseSignalRandom4
	LighthouseSignalRandom5
)

var animationNames = [...]string{
	"satellite-flash",
	"satellite-flash-delay-1",
	"satellite-flash-delay-2",
	"satellite-flash-delay-3",
	"satellite-flash-random-1",
	"satellite-flash-random-2",
	"satellite-flash-random-3",
	"satellite-flash-random-4",
	"satellite-flash-random-5",
	"lighthouse-signal",
	"lighthouse-signal-delay-1",
	"lighthouse-signal-delay-2",
	"lighthouse-signal-delay-3",
	"lighthouse-signal-random-1",
	"lighthouse-signal-random-2",
	"lighthouse-signal-random-3",
	"lighthouse-signal-random-4",
	"lighthouse-signal-random-5",
}

func (a Animation) String() string {
	if int(a) < len(animationNames) {
		return animationNames[a]
	}
	return fmt.Sprintf("Animation(%d)", a)
}

// Lighthouse reports whether a belongs to the slow lighthouse-signal family
// rather than the quick satellite-flash family.
func (a Animation) Lighthouse() bool {
	return a >= LighthouseSignal && int(a) < len(animationNames)
}

func (a Animation) MarshalText() ([]byte, error) {
	if int(a) >= len(animationNames) {
		return nil, fmt.Errorf("starfield: invalid animation %d", a)
	}
	return []byte(animationNames[a]), nil
}

func (a *Animation) UnmarshalText(b []byte) error {
	i, err := lookup(animationNames[:], string(b), "animation")
	if err != nil {
		return err
	}
	*a = Animation(i)
	return nil
}

func lookup(names []string, name, kind string) (int, error) {
	for i, n := range names {
		if n == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("starfield: unknown %s %q", kind, name)
}

// Star is one decorative point of the background field. Positions are
// percentages of the container.
type Star struct {
	ID        int       `json:"id" yaml:"id"`
	Top       float64   `json:"top" yaml:"top"`
	Left      float64   `json:"left" yaml:"left"`
	Size      Size      `json:"size" yaml:"size"`
	Color     Color     `json:"color" yaml:"color"`
	Animation Animation `json:"animation" yaml:"animation"`
	Opacity   float64   `json:"opacity" yaml:"opacity"`
}
