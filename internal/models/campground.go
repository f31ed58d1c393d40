package models

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Point is a geographic position stored as longitude/latitude
type Point struct {
	Longitude float64
	Latitude  float64
}

// pointJSON is the GeoJSON representation of a Point
type pointJSON struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// MarshalJSON encodes the point as a GeoJSON Point: {"type":"Point","coordinates":[lng,lat]}
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal(pointJSON{Type: "Point", Coordinates: [2]float64{p.Longitude, p.Latitude}})
}

// UnmarshalJSON decodes a GeoJSON Point
func (p *Point) UnmarshalJSON(data []byte) error {
	var raw pointJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Type != "" && raw.Type != "Point" {
		return fmt.Errorf("unsupported geometry type: %s", raw.Type)
	}
	p.Longitude = raw.Coordinates[0]
	p.Latitude = raw.Coordinates[1]
	return nil
}

// Image is a stored campground image. Filename is the storage identifier.
type Image struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// Campground represents a listing with its images and populated reviews
type Campground struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Geometry    *Point    `json:"geometry"`
	Images      []Image   `json:"images"`
	Author      Author    `json:"author"`
	Reviews     []Review  `json:"reviews"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CampgroundSummary represents a campground in the list endpoint
type CampgroundSummary struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Location string `json:"location"`
	Geometry *Point `json:"geometry"`
}

// MapPoint represents a campground marker for the cluster map
type MapPoint struct {
	ID  int     `json:"id"`
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// FileUpload is an uploaded file waiting to be sent to the image storage
type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// CampgroundInput is the validated payload of a campground create or update request
type CampgroundInput struct {
	Title        string       `json:"title" validate:"required,max=255"`
	Location     string       `json:"location" validate:"required,max=255"`
	Description  string       `json:"description" validate:"required,max=5000"`
	Price        *float64     `json:"price" validate:"required,gte=0,lte=99999999.99,cents"`
	DeleteImages []string     `json:"deleteImages" validate:"dive,required"`
	Images       []FileUpload `json:"-" validate:"-"`
}
