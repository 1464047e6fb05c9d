package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Package categories; the category decides the identifier prefix.
const (
	PackageGeneral = "General"
	PackageSenior  = "Senior"
)

// PackagePrefix returns the identifier prefix for a package category.
func PackagePrefix(category string) string {
	if category == PackageSenior {
		return "S"
	}
	return "P"
}

// Package is a prepaid pass sold to customers. NumClasses is nil when the
// package is unlimited; exactly one of NumClasses / IsUnlimited governs.
type Package struct {
	ID          string          `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	Category    string          `db:"category" json:"category"`
	ClassType   string          `db:"class_type" json:"class_type"`
	NumClasses  *int            `db:"num_classes" json:"num_classes"`
	IsUnlimited bool            `db:"is_unlimited" json:"is_unlimited"`
	StartDate   time.Time       `db:"start_date" json:"start_date"`
	EndDate     time.Time       `db:"end_date" json:"end_date"`
	Price       decimal.Decimal `db:"price" json:"price"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// PackageRef is the projection returned by the id/name listing endpoint.
type PackageRef struct {
	ID       string `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Category string `db:"category" json:"category"`
}
