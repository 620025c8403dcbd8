package main

import "github.com/companieshouse/company-exemptions-api/cmd"

func main() {
	cmd.Execute()
}
