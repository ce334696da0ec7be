package main

import "realestate_backend/internal/app"

func main() {
	app.Run()
}
