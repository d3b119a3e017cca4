package domain

import "time"

// BusinessInfo is the storefront's single configuration document: contact
// details, social links and homepage copy.
type BusinessInfo struct {
	ID           string    `json:"id" bson:"-"`
	Name         string    `json:"name" bson:"name"`
	Tagline      string    `json:"tagline" bson:"tagline"`
	About        string    `json:"about" bson:"about"`
	ContactEmail string    `json:"contactEmail" bson:"contactEmail"`
	ContactPhone string    `json:"contactPhone" bson:"contactPhone"`
	Address      string    `json:"address" bson:"address"`
	WhatsApp     string    `json:"whatsapp" bson:"whatsapp"`
	Facebook     string    `json:"facebook" bson:"facebook"`
	Instagram    string    `json:"instagram" bson:"instagram"`
	Twitter      string    `json:"twitter" bson:"twitter"`
	HeroTitle    string    `json:"heroTitle" bson:"heroTitle"`
	HeroSubtitle string    `json:"heroSubtitle" bson:"heroSubtitle"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}

// BusinessInfoPatch holds the fields sent to an upsert. Nil fields keep their
// stored value.
type BusinessInfoPatch struct {
	Name         *string
	Tagline      *string
	About        *string
	ContactEmail *string
	ContactPhone *string
	Address      *string
	WhatsApp     *string
	Facebook     *string
	Instagram    *string
	Twitter      *string
	HeroTitle    *string
	HeroSubtitle *string
}

// Apply merges the set fields of patch into b.
func (b *BusinessInfo) Apply(patch BusinessInfoPatch) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&b.Name, patch.Name)
	set(&b.Tagline, patch.Tagline)
	set(&b.About, patch.About)
	set(&b.ContactEmail, patch.ContactEmail)
	set(&b.ContactPhone, patch.ContactPhone)
	set(&b.Address, patch.Address)
	set(&b.WhatsApp, patch.WhatsApp)
	set(&b.Facebook, patch.Facebook)
	set(&b.Instagram, patch.Instagram)
	set(&b.Twitter, patch.Twitter)
	set(&b.HeroTitle, patch.HeroTitle)
	set(&b.HeroSubtitle, patch.HeroSubtitle)
}
