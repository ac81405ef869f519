package main

import "github.com/kulakowski-lukasz/sas-clinical-utils/cmd/compscan"

func main() { compscan.Execute() }
