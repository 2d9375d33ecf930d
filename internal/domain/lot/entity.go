package lot

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Lot is the traceability record of one physical slab or tile batch. The
// host stock engine owns its existence; this subsystem only maintains the
// descriptive attributes captured at reception and the photo collection.
type Lot struct {
	id           uuid.UUID
	name         string
	productID    uuid.UUID
	dimensions   Dimensions
	blockCode    string
	bundleCode   string
	format       Format
	plateDetails string
	createdAt    time.Time
	updatedAt    time.Time
}

func NewLot(name string, productID uuid.UUID, dims Dimensions, format Format) (*Lot, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if format == "" {
		format = FormatSlab
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}
	return &Lot{
		id:         uuid.New(),
		name:       name,
		productID:  productID,
		dimensions: dims,
		format:     format,
	}, nil
}

func ReconstructLot(
	id uuid.UUID,
	name string,
	productID uuid.UUID,
	dims Dimensions,
	blockCode, bundleCode string,
	format Format,
	plateDetails string,
	createdAt, updatedAt time.Time,
) *Lot {
	return &Lot{
		id:           id,
		name:         name,
		productID:    productID,
		dimensions:   dims,
		blockCode:    blockCode,
		bundleCode:   bundleCode,
		format:       format,
		plateDetails: plateDetails,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (l *Lot) SetDimensions(d Dimensions) {
	l.dimensions = d
}

func (l *Lot) SetCodes(blockCode, bundleCode string) {
	l.blockCode = blockCode
	l.bundleCode = bundleCode
}

func (l *Lot) SetFormat(f Format) error {
	if !f.IsValid() {
		return ErrInvalidFormat
	}
	l.format = f
	return nil
}

func (l *Lot) SetPlateDetails(details string) {
	l.plateDetails = details
}

func (l *Lot) ID() uuid.UUID          { return l.id }
func (l *Lot) Name() string           { return l.name }
func (l *Lot) ProductID() uuid.UUID   { return l.productID }
func (l *Lot) Dimensions() Dimensions { return l.dimensions }
func (l *Lot) BlockCode() string      { return l.blockCode }
func (l *Lot) BundleCode() string     { return l.bundleCode }
func (l *Lot) Format() Format         { return l.format }
func (l *Lot) PlateDetails() string   { return l.plateDetails }
func (l *Lot) CreatedAt() time.Time   { return l.createdAt }
func (l *Lot) UpdatedAt() time.Time   { return l.updatedAt }

// Photo belongs to exactly one lot and is cascade-deleted with it. The
// binary payload lives in blob storage; the entity keeps the key.
type Photo struct {
	id          uuid.UUID
	lotID       uuid.UUID
	displayName string
	sequence    int
	blobKey     string
	contentType string
	sizeBytes   int64
	capturedAt  time.Time
	note        string
	createdAt   time.Time
}

const DefaultPhotoSequence = 10

func NewPhoto(lotID uuid.UUID, displayName string, sequence int, blobKey, contentType string, sizeBytes int64, capturedAt time.Time, note string) (*Photo, error) {
	if blobKey == "" {
		return nil, ErrEmptyPayload
	}
	if displayName == "" {
		displayName = "Photo"
	}
	if sequence <= 0 {
		sequence = DefaultPhotoSequence
	}
	return &Photo{
		id:          uuid.New(),
		lotID:       lotID,
		displayName: displayName,
		sequence:    sequence,
		blobKey:     blobKey,
		contentType: contentType,
		sizeBytes:   sizeBytes,
		capturedAt:  capturedAt,
		note:        note,
	}, nil
}

func ReconstructPhoto(
	id, lotID uuid.UUID,
	displayName string,
	sequence int,
	blobKey, contentType string,
	sizeBytes int64,
	capturedAt time.Time,
	note string,
	createdAt time.Time,
) *Photo {
	return &Photo{
		id:          id,
		lotID:       lotID,
		displayName: displayName,
		sequence:    sequence,
		blobKey:     blobKey,
		contentType: contentType,
		sizeBytes:   sizeBytes,
		capturedAt:  capturedAt,
		note:        note,
		createdAt:   createdAt,
	}
}

func (p *Photo) ID() uuid.UUID        { return p.id }
func (p *Photo) LotID() uuid.UUID     { return p.lotID }
func (p *Photo) DisplayName() string  { return p.displayName }
func (p *Photo) Sequence() int        { return p.sequence }
func (p *Photo) BlobKey() string      { return p.blobKey }
func (p *Photo) ContentType() string  { return p.contentType }
func (p *Photo) SizeBytes() int64     { return p.sizeBytes }
func (p *Photo) CapturedAt() time.Time { return p.capturedAt }
func (p *Photo) Note() string         { return p.note }
func (p *Photo) CreatedAt() time.Time { return p.createdAt }

// SortPhotos orders photos by sequence, then creation time. The first photo
// in this order is the lot's primary photo.
func SortPhotos(photos []*Photo) {
	sort.SliceStable(photos, func(i, j int) bool {
		if photos[i].sequence != photos[j].sequence {
			return photos[i].sequence < photos[j].sequence
		}
		return photos[i].createdAt.Before(photos[j].createdAt)
	})
}

// PrimaryPhoto returns the first photo in display order, or nil.
func PrimaryPhoto(photos []*Photo) *Photo {
	if len(photos) == 0 {
		return nil
	}
	sorted := make([]*Photo, len(photos))
	copy(sorted, photos)
	SortPhotos(sorted)
	return sorted[0]
}
