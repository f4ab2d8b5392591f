// Package main provides the hyprclock widget and its control CLI.
package main

func main() {
	Execute()
}
