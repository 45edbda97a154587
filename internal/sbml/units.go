// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package sbml

// predefinedUnits are the base unit kinds every model may reference without
// declaring them.
var predefinedUnits = map[string]struct{}{
	"ampere": {}, "avogadro": {}, "becquerel": {}, "candela": {}, "celsius": {},
	"coulomb": {}, "dimensionless": {}, "farad": {}, "gram": {}, "gray": {},
	"henry": {}, "hertz": {}, "item": {}, "joule": {}, "katal": {},
	"kelvin": {}, "kilogram": {}, "liter": {}, "litre": {}, "lumen": {},
	"lux": {}, "meter": {}, "metre": {}, "mole": {}, "newton": {},
	"ohm": {}, "pascal": {}, "radian": {}, "second": {}, "siemens": {},
	"sievert": {}, "steradian": {}, "tesla": {}, "volt": {}, "watt": {},
	"weber": {},
}

// IsPredefinedUnit reports whether id names a base unit kind.
func IsPredefinedUnit(id string) bool {
	_, ok := predefinedUnits[id]
	return ok
}
