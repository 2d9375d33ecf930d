package response

import (
	"time"

	"slabstock/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type LotResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	ProductID    uuid.UUID `json:"product_id"`
	ThicknessCM  float64   `json:"thickness_cm"`
	HeightM      float64   `json:"height_m"`
	WidthM       float64   `json:"width_m"`
	AreaM2       float64   `json:"area_m2"`
	BlockCode    string    `json:"block_code"`
	BundleCode   string    `json:"bundle_code"`
	Format       string    `json:"format"`
	PlateDetails string    `json:"plate_details"`
	PhotoCount   int       `json:"photo_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func FromLotView(v *queries.LotView) *LotResponse {
	var resp LotResponse
	_ = copier.Copy(&resp, v)
	return &resp
}

type PhotoResponse struct {
	ID          uuid.UUID `json:"id"`
	LotID       uuid.UUID `json:"lot_id"`
	DisplayName string    `json:"display_name"`
	Sequence    int       `json:"sequence"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	CapturedAt  time.Time `json:"captured_at"`
	Note        *string   `json:"note,omitempty"`
	URL         string    `json:"url,omitempty"`
}

func FromPhotoView(v *queries.PhotoView) *PhotoResponse {
	var resp PhotoResponse
	_ = copier.Copy(&resp, v)
	return &resp
}

func FromPhotoList(items []*queries.PhotoView) []*PhotoResponse {
	res := make([]*PhotoResponse, len(items))
	for i, it := range items {
		res[i] = FromPhotoView(it)
	}
	return res
}

type CaptureReceptionResponse struct {
	Quantity float64 `json:"quantity"`
}
