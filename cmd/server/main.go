package main

import "smartleave/internal/app/server"

func main() {
	server.Run()
}
