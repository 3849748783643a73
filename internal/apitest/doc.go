// Package apitest provides an in-memory implementation of the recipe REST
// API built on chi. Tests start it with Start; cmd/dapur-fakeapi serves it
// for local development.
package apitest
