package products

import "time"

type Product struct {
	ID          string    `json:"id" bson:"_id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Price       float64   `json:"price" bson:"price"`
	Images      []string  `json:"images,omitempty" bson:"images,omitempty"`
	Category    string    `json:"category,omitempty" bson:"category,omitempty"`
	Brand       string    `json:"brand,omitempty" bson:"brand,omitempty"`
	Stock       int       `json:"stock" bson:"stock"`
	Rating      float64   `json:"rating" bson:"rating"`
	NumReviews  int       `json:"num_reviews" bson:"num_reviews"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

type NewProduct struct {
	Title       string   `json:"title" validate:"required,min=3,max=200"`
	Description string   `json:"description" validate:"max=2000"`
	Price       float64  `json:"price" validate:"gte=0"`
	Images      []string `json:"images" validate:"dive,url"`
	Category    string   `json:"category"`
	Brand       string   `json:"brand"`
	Stock       int      `json:"stock" validate:"gte=0"`
}

// ListFilter carries the catalog query parameters: page/limit pagination, an
// exact category match and a free-text search over title and description.
type ListFilter struct {
	Category string
	Search   string
	Page     int
	Limit    int
}

type ListResult struct {
	Products []Product `json:"products"`
	Page     int       `json:"page"`
	Pages    int       `json:"pages"`
	Total    int64     `json:"total"`
}
