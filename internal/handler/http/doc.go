// Package http implements the HTTP transport layer of the dev document
// server.
//
// It exposes route wiring, request handlers, and middleware used by the REST
// API and the websocket watch feed. Cross-cutting concerns such as
// authentication, request tracing, and access logging are handled in this
// package before requests are delegated to the service layer.
package http
