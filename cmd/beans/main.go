// Command beans loads bean definitions into a container and lets you list,
// describe and instantiate them, or serve the inspection endpoints.
//
//	beans list
//	beans describe petStore
//	beans get cart
//	beans -f config/beans.yaml --scan petstore.annotated serve
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand(&rootOptions{}).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
