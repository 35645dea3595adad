package main

import "github.com/llehouerou/jamwaves/internal/cli"

func main() {
	cli.Execute()
}
