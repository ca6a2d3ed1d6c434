// Package docs Place Service API.
//
// Location-data backend for points of interest. Stores places with
// geographic coordinates, answers proximity and distance queries using
// spherical geometry, geocodes addresses, and synchronizes place data
// from the Google Maps Places API into its own store.
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs
