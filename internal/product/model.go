package product

import "time"

// Product is a catalog entry with Thai/English copy.
type Product struct {
	ID            string   `json:"id"`
	NameTH        string   `json:"name_th"`
	NameEN        string   `json:"name_en"`
	DescriptionTH string   `json:"description_th"`
	DescriptionEN string   `json:"description_en"`
	SpecsTH       []string `json:"specs_th"`
	SpecsEN       []string `json:"specs_en"`
	// We store price as a string to avoid rounding errors (NUMERIC in Postgres)
	Price      string    `json:"price"`
	Discount   int       `json:"discount"`
	Stock      int       `json:"stock"`
	ImageURLs  []string  `json:"image_urls"`
	CategoryID string    `json:"category_id"`
	BrandID    string    `json:"brand_id"`
	// Joined display fields, empty outside list/read queries.
	CategoryName string    `json:"category_name,omitempty"`
	BrandName    string    `json:"brand_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HTTPError represents a standard error in JSON.
// swagger:model
type HTTPError struct {
	// Error message
	// example: not found
	Error string `json:"error"`
}

// CreateProductRequest payload of creation.
// swagger:model CreateProductRequest
type CreateProductRequest struct {
	NameTH        string   `json:"name_th"        example:"คีย์บอร์ดกลไก"`
	NameEN        string   `json:"name_en"        example:"Mechanical Keyboard"`
	DescriptionTH string   `json:"description_th"`
	DescriptionEN string   `json:"description_en"`
	SpecsTH       []string `json:"specs_th"`
	SpecsEN       []string `json:"specs_en"`
	Price         string   `json:"price"          example:"199.90"`
	Discount      int      `json:"discount"       example:"20"`
	Stock         int      `json:"stock"          example:"10"`
	ImageURLs     []string `json:"image_urls"`
	CategoryID    string   `json:"category_id"`
	BrandID       string   `json:"brand_id"`
}

// UpdateProductRequest payload of partial update.
// swagger:model UpdateProductRequest
type UpdateProductRequest struct {
	NameTH        string    `json:"name_th"`
	NameEN        string    `json:"name_en"`
	DescriptionTH string    `json:"description_th"`
	DescriptionEN string    `json:"description_en"`
	SpecsTH       *[]string `json:"specs_th"`
	SpecsEN       *[]string `json:"specs_en"`
	Price         string    `json:"price"`
	Discount      *int      `json:"discount"`
	Stock         *int      `json:"stock"`
	ImageURLs     *[]string `json:"image_urls"`
	CategoryID    string    `json:"category_id"`
	BrandID       string    `json:"brand_id"`
}
