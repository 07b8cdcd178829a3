package model

import "time"

type HouseStatus string

const (
	HouseStatusProject    HouseStatus = "PROJECT"
	HouseStatusPlanned    HouseStatus = "PLANNED"
	HouseStatusInProgress HouseStatus = "IN_PROGRESS"
	HouseStatusSuspended  HouseStatus = "SUSPENDED"
	HouseStatusBuilt      HouseStatus = "BUILT"
	HouseStatusForSale    HouseStatus = "FOR_SALE"
	HouseStatusSold       HouseStatus = "SOLD"
	HouseStatusArchived   HouseStatus = "ARCHIVED"
)

type House struct {
	ID          int64       `gorm:"column:id;primaryKey" json:"id"`
	Name        string      `gorm:"column:name" json:"name"`
	Description string      `gorm:"column:description" json:"description"`
	MainImage   string      `gorm:"column:main_image" json:"main_image"`
	Status      HouseStatus `gorm:"column:status" json:"status"`
	IsOrder     bool        `gorm:"column:is_order" json:"is_order"`
	District    string      `gorm:"column:district" json:"district"`
	Address     string      `gorm:"column:address" json:"address"`
	Floors      int         `gorm:"column:floors" json:"floors"`
	Entrances   int         `gorm:"column:entrances" json:"entrances"`
	BeginDate   *time.Time  `gorm:"column:begin_date" json:"begin_date,omitempty"`
	EndDate     *time.Time  `gorm:"column:end_date" json:"end_date,omitempty"`
	StartPrice  *float64    `gorm:"column:start_price" json:"start_price,omitempty"`
	FinalPrice  *float64    `gorm:"column:final_price" json:"final_price,omitempty"`

	Images     []HouseImage     `gorm:"-" json:"images,omitempty"`
	Attributes []AttributeValue `gorm:"-" json:"attributes,omitempty"`
	Apartments []Apartment      `gorm:"-" json:"apartments,omitempty"`
}

func (House) TableName() string { return "houses" }

type HouseImage struct {
	ID      int64  `gorm:"column:id;primaryKey" json:"id"`
	IDHouse int64  `gorm:"column:id_house" json:"id_house"`
	Image   string `gorm:"column:image" json:"image"`
}

func (HouseImage) TableName() string { return "house_images" }

type Attribute struct {
	ID   int64  `gorm:"column:id;primaryKey" json:"id"`
	Name string `gorm:"column:name" json:"name"`
}

func (Attribute) TableName() string { return "attributes" }

// HouseAttribute is the (house, attribute) association row carrying the
// attribute's value for that particular house.
type HouseAttribute struct {
	IDHouse     int64  `gorm:"column:id_house;primaryKey" json:"id_house"`
	IDAttribute int64  `gorm:"column:id_attribute;primaryKey" json:"id_attribute"`
	Value       string `gorm:"column:value" json:"value"`
}

func (HouseAttribute) TableName() string { return "house_attributes" }

// AttributeValue is the resolved form of a HouseAttribute link.
type AttributeValue struct {
	Attribute Attribute `json:"attribute"`
	Value     string    `json:"value"`
}
