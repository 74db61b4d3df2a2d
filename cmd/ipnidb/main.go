// Package main provides the ipnidb CLI application.
// ipnidb imports IPNI plant names into a database and serves them
// through a REST API.
package main

import "github.com/gnames/ipnidb/cmd"

func main() {
	cmd.Execute()
}
