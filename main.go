package main

import "travel-journal-api/internal/app"

func main() {
	app.Run()
}
