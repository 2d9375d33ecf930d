package lot

import "errors"

var (
	ErrEmptyName         = errors.New("lot name cannot be empty")
	ErrInvalidFormat     = errors.New("invalid lot format code")
	ErrNegativeDimension = errors.New("dimensions cannot be negative")
	ErrEmptyPayload      = errors.New("photo payload cannot be empty")
)

// Dimensions of a slab. Thickness in centimeters, height and width in
// meters; zero means not captured yet.
type Dimensions struct {
	thicknessCM float64
	heightM     float64
	widthM      float64
}

func NewDimensions(thicknessCM, heightM, widthM float64) (Dimensions, error) {
	if thicknessCM < 0 || heightM < 0 || widthM < 0 {
		return Dimensions{}, ErrNegativeDimension
	}
	return Dimensions{thicknessCM: thicknessCM, heightM: heightM, widthM: widthM}, nil
}

func (d Dimensions) ThicknessCM() float64 { return d.thicknessCM }
func (d Dimensions) HeightM() float64     { return d.heightM }
func (d Dimensions) WidthM() float64      { return d.widthM }

// Area is height x width in square meters; zero when either side is not
// captured. Reception lines use it to derive the received quantity.
func (d Dimensions) Area() float64 {
	if d.heightM <= 0 || d.widthM <= 0 {
		return 0
	}
	return d.heightM * d.widthM
}

func (d Dimensions) IsComplete() bool {
	return d.heightM > 0 && d.widthM > 0
}

// Format is the commercial cut of the slab. "slab" is a full plate; the
// size codes are tile formats in meters (width x length, LL = free length).
type Format string

const FormatSlab Format = "slab"

var formatCatalog = map[Format]struct{}{
	FormatSlab: {},
	"060x120":  {},
	"060x060":  {},
	"060x040":  {},
	"060x030":  {},
	"060x020":  {},
	"060x010":  {},
	"060xLL":   {},
	"050xLL":   {},
	"040xLL":   {},
	"020xLL":   {},
	"015xLL":   {},
	"010xLL":   {},
	"005xLL":   {},
	"080x160":  {},
	"075x150":  {},
	"100x050":  {},
	"100x025":  {},
	"122x061":  {},
	"120x278":  {},
	"300x100":  {},
	"320x160":  {},
	"324x162":  {},
}

func (f Format) IsValid() bool {
	_, ok := formatCatalog[f]
	return ok
}

func NewFormat(s string) (Format, error) {
	if s == "" {
		return FormatSlab, nil
	}
	f := Format(s)
	if !f.IsValid() {
		return "", ErrInvalidFormat
	}
	return f, nil
}
