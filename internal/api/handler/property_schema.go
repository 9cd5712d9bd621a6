package handler

// errorSchema documents the error envelope in swagger annotations.
type errorSchema struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// messageResponse is returned by delete operations.
type messageResponse struct {
	Message string `json:"message"`
}

type locationRequest struct {
	Address string `json:"address"  validate:"required"`
	City    string `json:"city"     validate:"required"`
	State   string `json:"state"    validate:"required"`
	ZipCode string `json:"zip_code"`
}

type createPropertyRequest struct {
	Title       string          `json:"title"       validate:"required"`
	Description string          `json:"description" validate:"required"`
	Type        string          `json:"type"        validate:"required,oneof=house land"`
	Category    string          `json:"category"    validate:"required,oneof=buy sell"`
	Price       float64         `json:"price"       validate:"gte=0"`
	Size        float64         `json:"size"        validate:"gte=0"`
	SizeUnit    string          `json:"size_unit"   validate:"omitempty,oneof=sqft sqm acres"`
	Bedrooms    int             `json:"bedrooms"    validate:"gte=0"`
	Bathrooms   int             `json:"bathrooms"   validate:"gte=0"`
	Location    locationRequest `json:"location"    validate:"required"`
	Images      []string        `json:"images"`
}

// updatePropertyRequest carries a partial patch. Absent fields leave the
// stored value untouched; the merged record is re-validated in full by the
// service, so no validate tags here.
type updatePropertyRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Type        *string   `json:"type"`
	Category    *string   `json:"category"`
	Price       *float64  `json:"price"`
	Size        *float64  `json:"size"`
	SizeUnit    *string   `json:"size_unit"`
	Bedrooms    *int      `json:"bedrooms"`
	Bathrooms   *int      `json:"bathrooms"`
	Address     *string   `json:"address"`
	City        *string   `json:"city"`
	State       *string   `json:"state"`
	ZipCode     *string   `json:"zip_code"`
	Images      *[]string `json:"images"`
	Status      *string   `json:"status"`
}

type setStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
