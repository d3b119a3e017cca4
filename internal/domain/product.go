package domain

import "time"

// Product represents an item in the storefront catalog.
type Product struct {
	ID          string    `json:"id" bson:"-"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	Price       float64   `json:"price" bson:"price"`
	Image       string    `json:"image" bson:"image"`
	Category    string    `json:"category" bson:"category"`
	Sizes       []string  `json:"sizes" bson:"sizes"`
	Colors      []string  `json:"colors" bson:"colors"`
	InStock     bool      `json:"inStock" bson:"inStock"`
	Featured    bool      `json:"featured" bson:"featured"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

// HasAnySize reports whether the product offers at least one of the given sizes.
func (p *Product) HasAnySize(sizes []string) bool {
	for _, want := range sizes {
		for _, have := range p.Sizes {
			if have == want {
				return true
			}
		}
	}
	return false
}

// ProductPatch carries the fields of a partial product update. Nil fields are
// left unchanged.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *float64
	Image       *string
	Category    *string
	Sizes       []string
	Colors      []string
	InStock     *bool
	Featured    *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil &&
		p.Image == nil && p.Category == nil && p.Sizes == nil &&
		p.Colors == nil && p.InStock == nil && p.Featured == nil
}

// Apply copies the set fields of patch onto p.
func (p *Product) Apply(patch ProductPatch) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Sizes != nil {
		p.Sizes = patch.Sizes
	}
	if patch.Colors != nil {
		p.Colors = patch.Colors
	}
	if patch.InStock != nil {
		p.InStock = *patch.InStock
	}
	if patch.Featured != nil {
		p.Featured = *patch.Featured
	}
}
