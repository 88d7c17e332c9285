// mybin is a small toolbox of personal command-line utilities.
package main

import (
	"github.com/huanghao/mybin/internal/cmd"
)

func main() {
	cmd.Execute()
}
