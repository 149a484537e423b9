/*
Copyright © 2023 Glossopoeia
*/
package main

import "github.com/glossopoeia/subst/cmd"

func main() {
	cmd.Execute()
}
