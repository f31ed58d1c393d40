package models

import "time"

// Review represents a rating and comment attached to one campground
type Review struct {
	ID           int       `json:"id"`
	CampgroundID int       `json:"campgroundId"`
	Rating       int       `json:"rating"`
	Body         string    `json:"body"`
	Author       Author    `json:"author"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ReviewInput is the validated payload of a review creation request.
// The author is taken from the session, never from the body.
type ReviewInput struct {
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Body   string `json:"body" validate:"required,max=5000"`
}
