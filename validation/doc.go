// Package validation provides input validation for mapkit configuration
// and request values.
//
// Struct tag validation (go-playground/validator) is used for the data model:
//
//	type GeoPoint struct {
//	    Latitude float64 `json:"latitude" validate:"gte=-90,lte=90"`
//	}
//	err := validation.Validate(p)
//
// Programmatic validation collects errors for checks that tags cannot express:
//
//	v := validation.New()
//	v.Between("opacity", value, 0, 1)
//	err := v.Validate()
package validation
