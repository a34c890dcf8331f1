// Package main is the entry point for the government news dashboard.
//
// Usage:
//
//	gnd                      start the terminal dashboard
//	gnd report -f json       print a report for the default query
//	gnd version              print build information
package main

func main() {
	Execute()
}
