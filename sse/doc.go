// Package sse streams server-sent events to HTTP clients.
//
// A Hub fans published events out to every connected client. Clients that
// fall behind lose events rather than blocking publishers.
//
//	hub := sse.NewHub(log)
//	registry.Register(sse.NewComponent(hub))
//	router.GET("/events", sse.Handler(hub))
//	hub.Publish("map.switched", payload)
package sse
