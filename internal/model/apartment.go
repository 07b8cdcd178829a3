package model

type ApartmentCategory struct {
	ID   int64  `gorm:"column:id;primaryKey" json:"id"`
	Name string `gorm:"column:name" json:"name"`
}

func (ApartmentCategory) TableName() string { return "apartment_categories" }

type Apartment struct {
	ID          int64   `gorm:"column:id;primaryKey" json:"id"`
	Name        string  `gorm:"column:name" json:"name"`
	Description string  `gorm:"column:description" json:"description"`
	IDCategory  int64   `gorm:"column:id_category" json:"id_category"`
	IDHouse     int64   `gorm:"column:id_house" json:"id_house"`
	Rooms       int     `gorm:"column:rooms" json:"rooms"`
	Area        float64 `gorm:"column:area" json:"area"`
	Count       int     `gorm:"column:count" json:"count"`

	Category   *ApartmentCategory `gorm:"-" json:"category,omitempty"`
	Images     []ApartmentImage   `gorm:"-" json:"images,omitempty"`
	Parameters []ParameterValue   `gorm:"-" json:"parameters,omitempty"`
}

func (Apartment) TableName() string { return "apartments" }

type ApartmentImage struct {
	ID          int64  `gorm:"column:id;primaryKey" json:"id"`
	IDApartment int64  `gorm:"column:id_apartment" json:"id_apartment"`
	Image       string `gorm:"column:image" json:"image"`
}

func (ApartmentImage) TableName() string { return "apartment_images" }

type Parameter struct {
	ID   int64  `gorm:"column:id;primaryKey" json:"id"`
	Name string `gorm:"column:name" json:"name"`
}

func (Parameter) TableName() string { return "parameters" }

// ApartmentParameter is the (apartment, parameter) association row carrying
// the parameter's value for that particular apartment.
type ApartmentParameter struct {
	IDApartment int64  `gorm:"column:id_apartment;primaryKey" json:"id_apartment"`
	IDParameter int64  `gorm:"column:id_parameter;primaryKey" json:"id_parameter"`
	Value       string `gorm:"column:value" json:"value"`
}

func (ApartmentParameter) TableName() string { return "apartment_parameters" }

// ParameterValue is the resolved form of an ApartmentParameter link.
type ParameterValue struct {
	Parameter Parameter `json:"parameter"`
	Value     string    `json:"value"`
}
