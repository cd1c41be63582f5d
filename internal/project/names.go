package project

import (
	"fmt"

	petname "github.com/dustinkirkland/golang-petname"
)

func init() {
	petname.NonDeterministicMode()
}

// RandomName makes up a readable project name, like "brave-otter".
func RandomName() string {
	return fmt.Sprintf("%s-%s", petname.Adjective(), petname.Name())
}
