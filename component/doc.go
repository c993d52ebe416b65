// Package component manages the lifecycle of the long-lived parts of a
// mapkit host, such as the HTTP server and the map driver.
//
// Components are started in registration order, stopped in reverse order
// and report their health for the /health endpoint.
package component
