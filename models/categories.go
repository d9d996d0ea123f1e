package models

type Subcategory struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	ParentCategoryID string `json:"parentCategoryId"`
}

type Category struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Subcategories []Subcategory `json:"subcategories"`
}

func newCategory(id, title string, subs ...[2]string) Category {
	c := Category{ID: id, Title: title}
	for _, s := range subs {
		c.Subcategories = append(c.Subcategories, Subcategory{ID: s[0], Title: s[1], ParentCategoryID: id})
	}
	return c
}

// Categories is the fixed service catalog.
var Categories = []Category{
	newCategory("home_improvement", "Home Improvement",
		[2]string{"plumbing", "Plumbing"},
		[2]string{"electrical", "Electrical"},
		[2]string{"tiling", "Tiling"},
		[2]string{"flooring", "Flooring"},
		[2]string{"carpentry", "Carpentry"},
		[2]string{"painting", "Painting"},
		[2]string{"hvac", "HVAC"},
		[2]string{"roofing", "Roofing"},
		[2]string{"masonry", "Masonry"},
		[2]string{"handyman", "Handyman"},
	),
	newCategory("automotive", "Automotive",
		[2]string{"auto_repair", "Auto Repair"},
		[2]string{"auto_detailing", "Auto Detailing"},
		[2]string{"tire_service", "Tire Service"},
		[2]string{"towing", "Towing"},
	),
	newCategory("professional", "Professional Services",
		[2]string{"accounting", "Accounting"},
		[2]string{"legal", "Legal"},
		[2]string{"translation", "Translation"},
		[2]string{"consulting", "Consulting"},
	),
	newCategory("outdoor", "Outdoor & Garden",
		[2]string{"landscaping", "Landscaping"},
		[2]string{"gardening", "Gardening"},
		[2]string{"snow_removal", "Snow Removal"},
		[2]string{"fencing", "Fencing"},
	),
	newCategory("creative", "Creative Services",
		[2]string{"photography", "Photography"},
		[2]string{"videography", "Videography"},
		[2]string{"graphic_design", "Graphic Design"},
		[2]string{"music", "Music & Entertainment"},
	),
	newCategory("technical", "Technical & IT",
		[2]string{"computer_repair", "Computer Repair"},
		[2]string{"web_development", "Web Development"},
		[2]string{"it_support", "IT Support"},
		[2]string{"smart_home", "Smart Home Setup"},
	),
	newCategory("health", "Health & Wellness",
		[2]string{"personal_training", "Personal Training"},
		[2]string{"massage", "Massage Therapy"},
		[2]string{"nutrition", "Nutrition"},
		[2]string{"physiotherapy", "Physiotherapy"},
	),
	newCategory("cleaning", "Cleaning",
		[2]string{"house_cleaning", "House Cleaning"},
		[2]string{"office_cleaning", "Office Cleaning"},
		[2]string{"carpet_cleaning", "Carpet Cleaning"},
		[2]string{"window_cleaning", "Window Cleaning"},
	),
	newCategory("personal_care", "Personal Care",
		[2]string{"hairdressing", "Hairdressing"},
		[2]string{"makeup", "Makeup"},
		[2]string{"manicure", "Manicure & Pedicure"},
		[2]string{"barber", "Barber"},
	),
	newCategory("education", "Education & Tutoring",
		[2]string{"tutoring", "Tutoring"},
		[2]string{"language_lessons", "Language Lessons"},
		[2]string{"music_lessons", "Music Lessons"},
		[2]string{"driving_lessons", "Driving Lessons"},
	),
	newCategory("pet", "Pet Services",
		[2]string{"pet_sitting", "Pet Sitting"},
		[2]string{"dog_walking", "Dog Walking"},
		[2]string{"grooming", "Pet Grooming"},
		[2]string{"pet_training", "Pet Training"},
	),
	newCategory("transportation", "Transportation & Moving",
		[2]string{"moving", "Moving"},
		[2]string{"delivery", "Delivery"},
		[2]string{"furniture_assembly", "Furniture Assembly"},
	),
	newCategory("childcare", "Childcare",
		[2]string{"babysitting", "Babysitting"},
		[2]string{"nanny", "Nanny"},
		[2]string{"party_entertainment", "Party Entertainment"},
	),
	newCategory("specialty", "Specialty Services",
		[2]string{"tailoring", "Tailoring"},
		[2]string{"appliance_repair", "Appliance Repair"},
		[2]string{"locksmith", "Locksmith"},
		[2]string{"other", "Other"},
	),
}

// CategoryByID returns nil when the id is unknown.
func CategoryByID(id string) *Category {
	for i := range Categories {
		if Categories[i].ID == id {
			return &Categories[i]
		}
	}
	return nil
}
