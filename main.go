// Package main is the entry point for the lqratings CLI tool, which rates
// players of League of Legends custom games from exported match records.
package main

import "github.com/pable/lq-ratings/cmd"

func main() {
	cmd.Execute()
}
