package service

import (
	"errors"
	"strings"
)

// ErrInvalidCategory 表示分类不在固定的可选集合内。
var ErrInvalidCategory = errors.New("portfolio category is invalid")

// Category 是作品集的固定分类，集合封闭，新增分类属于代码变更。
type Category string

const (
	CategoryWedding    Category = "wedding"
	CategoryPreWedding Category = "pre-wedding"
	CategoryEvents     Category = "events"
	CategoryPortraits  Category = "portraits"
	CategoryCinematic  Category = "cinematic"
	CategoryCorporate  Category = "corporate"
	CategoryMaternity  Category = "maternity"
	CategoryBaby       Category = "baby"
)

// Categories lists every portfolio category in display order.
var Categories = []Category{
	CategoryWedding,
	CategoryPreWedding,
	CategoryEvents,
	CategoryPortraits,
	CategoryCinematic,
	CategoryCorporate,
	CategoryMaternity,
	CategoryBaby,
}

var categoryLabels = map[Category]string{
	CategoryWedding:    "Wedding",
	CategoryPreWedding: "Pre-Wedding",
	CategoryEvents:     "Events",
	CategoryPortraits:  "Portraits",
	CategoryCinematic:  "Cinematic",
	CategoryCorporate:  "Corporate",
	CategoryMaternity:  "Maternity",
	CategoryBaby:       "Baby & Newborn",
}

// ParseCategory normalizes raw input into a known category.
func ParseCategory(raw string) (Category, error) {
	category := Category(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := categoryLabels[category]; !ok {
		return "", ErrInvalidCategory
	}
	return category, nil
}

// Label returns the human readable name shown on the public site.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

func (c Category) String() string {
	return string(c)
}
