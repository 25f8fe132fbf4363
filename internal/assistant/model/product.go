package model

import "fmt"

// Product is a catalog entry. In this shop a product models a perfume with
// optional attributes that drive filtering, recommendations, and detail views.
type Product struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Category      string  `json:"category,omitempty"`
	Description   string  `json:"description,omitempty"`
	DescriptionES string  `json:"description_es,omitempty"`
	Brand         string  `json:"brand,omitempty"`
	Concentration string  `json:"concentration,omitempty"` // e.g. "EDT", "EDP", "Parfum"
	SizeML        int     `json:"size_ml,omitempty"`
	Family        string  `json:"family,omitempty"`   // e.g. "citrus", "woody", "oriental"
	Audience      string  `json:"audience,omitempty"` // "male", "female", "unisex"
	Stock         int     `json:"stock"`
	Img           string  `json:"img,omitempty"`
}

// Label renders the product reference used throughout assistant replies.
func (p Product) Label() string {
	if p.Brand == "" {
		return fmt.Sprintf("[%d] %s", p.ID, p.Name)
	}
	return fmt.Sprintf("[%d] %s - %s", p.ID, p.Brand, p.Name)
}
