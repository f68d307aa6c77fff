package main

import "sakay_backend/internal/app"

func main() {
	app.Run()
}
