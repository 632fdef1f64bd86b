// Package main provides the entry point for the htmlslim CLI.
//
// htmlslim analyzes and reduces HTML files exported from course and quiz
// platforms. It reports where the bytes go (scripts, styles, embedded
// images) and can write a minified or aggressively stripped copy that
// keeps the visible content.
//
// Usage:
//
//	htmlslim page.html
//	htmlslim --mode aggressive --flatten-inputs quiz.html
//
// See --help for all available options.
package main

// main is the entry point for htmlslim.
func main() {
	Execute()
}
