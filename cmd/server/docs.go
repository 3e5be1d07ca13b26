package main

//go:generate swag init -g cmd/server/main.go -o docs

// @title           Video Catalog API
// @version         0.1.0
// @description     Card listing, card detail and related cards.
// @host            localhost:3001
// @BasePath        /
// @schemes         http
