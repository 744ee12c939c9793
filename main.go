package main

import "github.com/alisoliman/recipe-app-api/cli"

func main() {
	cli.Execute()
}
